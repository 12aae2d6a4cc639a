package api

import (
	"log/slog"
	"net/http"

	"github.com/mstiles/blog-api/internal/api/shared"
	"github.com/mstiles/blog-api/internal/service"
)

// UserHandler handles the user endpoints.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusCreated, "register success", map[string]any{
		"user": UserSummary{Name: user.Name, Email: user.Email},
	})
}

// Delete handles DELETE /delete.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondError(w, r, http.StatusBadRequest, msgInvalidRequest, err)
		return
	}

	err := h.userService.Delete(r.Context(),
		service.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, "user successfully deleted", nil)
}
