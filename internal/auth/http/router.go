package http

import (
	"net/http"
	"time"

	"github.com/AlibekovAA/postboard/internal/auth/service"
	"github.com/AlibekovAA/postboard/internal/common/config"
	commonhttp "github.com/AlibekovAA/postboard/internal/common/http"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt int64  `json:"created_at"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse maps a stored user onto the wire shape. The password hash
// never leaves the service.
func NewUserResponse(user userdomain.User) UserResponse {
	return UserResponse{
		ID:        string(user.ID),
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Unix(),
	}
}

type Handler struct {
	auth    *service.AuthService
	errors  *commonhttp.ErrorHandler
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(auth *service.AuthService, cfg config.APIConfig, log *logger.Logger) *Handler {
	return &Handler{
		auth:    auth,
		errors:  commonhttp.NewErrorHandler(log),
		log:     log,
		timeout: cfg.RequestTimeout,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	post := commonhttp.RequireMethod(http.MethodPost)
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.HandleFunc("/api/auth/signup", post(withTimeout(h.signup)))
	mux.HandleFunc("/api/auth/login", post(withTimeout(h.login)))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("signup failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		Token: result.Token,
		User:  NewUserResponse(result.User),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		Token: result.Token,
		User:  NewUserResponse(result.User),
	})
}
