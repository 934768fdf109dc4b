package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AlibekovAA/postboard/internal/common/config"
	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
	commonhttp "github.com/AlibekovAA/postboard/internal/common/http"
	"github.com/AlibekovAA/postboard/internal/common/jwtverify"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	"github.com/AlibekovAA/postboard/internal/post/domain"
	"github.com/AlibekovAA/postboard/internal/post/service"
	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
)

type createPostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type postResponse struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type paginatedResponse struct {
	Data  []postResponse `json:"data"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}

func newPostResponse(post domain.Post) postResponse {
	return postResponse{
		ID:        string(post.ID),
		AuthorID:  string(post.AuthorID),
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt.Unix(),
		UpdatedAt: post.UpdatedAt.Unix(),
	}
}

type Handler struct {
	posts   *service.PostService
	errors  *commonhttp.ErrorHandler
	log     *logger.Logger
	timeout time.Duration
	authMW  func(http.Handler) http.Handler
}

func NewHandler(
	posts *service.PostService,
	authMW func(http.Handler) http.Handler,
	cfg config.APIConfig,
	log *logger.Logger,
) *Handler {
	return &Handler{
		posts:   posts,
		errors:  commonhttp.NewErrorHandler(log),
		log:     log,
		timeout: cfg.RequestTimeout,
		authMW:  authMW,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/posts", h.collection)
	mux.HandleFunc("/api/posts/", h.item)
}

// Listing and reads are public; creation and deletion go through the
// bearer token middleware.
func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	withTimeout := commonhttp.WithTimeout(h.timeout)

	switch r.Method {
	case http.MethodGet:
		withTimeout(h.list)(w, r)
	case http.MethodPost:
		h.authMW(withTimeout(h.create)).ServeHTTP(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	withTimeout := commonhttp.WithTimeout(h.timeout)

	switch r.Method {
	case http.MethodGet:
		withTimeout(h.get)(w, r)
	case http.MethodDelete:
		h.authMW(withTimeout(h.delete)).ServeHTTP(w, r)
	default:
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, "")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	limit := queryInt(r, "limit", 0)

	result, err := h.posts.List(r.Context(), page, limit)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	data := make([]postResponse, 0, len(result.Posts))
	for _, post := range result.Posts {
		data = append(data, newPostResponse(post))
	}

	commonhttp.WriteJSON(w, http.StatusOK, paginatedResponse{
		Data:  data,
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, newPostResponse(post))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingAuthorization)
		return
	}

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("post create failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	post, err := h.posts.Create(r.Context(), userdomain.ID(claims.UserID), service.CreateInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, newPostResponse(post))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingAuthorization)
		return
	}

	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), id, userdomain.ID(claims.UserID)); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) postID(w http.ResponseWriter, r *http.Request) (domain.ID, bool) {
	raw, ok := commonhttp.ExtractPostIDFromPath(r.URL.Path)
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodePostIDRequired, "post id required", nil, "")
		return "", false
	}

	if err := commonhttp.ValidateUUID(raw); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidPostIDFormat, "invalid post id format", nil, "")
		return "", false
	}

	return domain.ID(raw), true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
