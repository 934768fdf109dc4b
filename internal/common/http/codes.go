package http

const (
	CodeUnknown             = "UNKNOWN"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeInvalidJSON         = "INVALID_JSON"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodePostIDRequired      = "POST_ID_REQUIRED"
	CodeInvalidPostIDFormat = "INVALID_POST_ID_FORMAT"
)
