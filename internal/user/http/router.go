package http

import (
	"net/http"
	"time"

	authhttp "github.com/AlibekovAA/postboard/internal/auth/http"
	"github.com/AlibekovAA/postboard/internal/auth/service"
	"github.com/AlibekovAA/postboard/internal/common/config"
	commonerrors "github.com/AlibekovAA/postboard/internal/common/errors"
	commonhttp "github.com/AlibekovAA/postboard/internal/common/http"
	"github.com/AlibekovAA/postboard/internal/common/jwtverify"
	"github.com/AlibekovAA/postboard/internal/common/logger"
	userdomain "github.com/AlibekovAA/postboard/internal/user/domain"
)

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

func (h *Handler) Register(mux *http.ServeMux, authMW func(http.Handler) http.Handler) {
	get := commonhttp.RequireMethod(http.MethodGet)
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.Handle("/api/users/me", authMW(get(withTimeout(h.me))))
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingAuthorization)
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), userdomain.ID(claims.UserID))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authhttp.NewUserResponse(user))
}
