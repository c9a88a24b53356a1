package delete_terminal

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TerminalService/internal/api/handlers"
	"github.com/m04kA/SMC-TerminalService/internal/api/middleware"
	"github.com/m04kA/SMC-TerminalService/internal/service/terminals"
)

const (
	msgInvalidTerminalID = "некорректный ID терминала"
	msgNotFound          = "терминал не найден"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service TerminalService
	logger  Logger
}

func NewHandler(service TerminalService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/terminals/{terminalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	terminalID, err := uuid.Parse(vars["terminalId"])
	if err != nil {
		h.logger.Warn("DELETE /terminals/{id} - Invalid terminal ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTerminalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /terminals/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), terminalID, userID); err != nil {
		switch {
		case errors.Is(err, terminals.ErrTerminalNotFound):
			h.logger.Warn("DELETE /terminals/{id} - Terminal not found: terminal_id=%s", terminalID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, terminals.ErrAccessDenied):
			h.logger.Warn("DELETE /terminals/{id} - Access denied: terminal_id=%s, user_id=%d", terminalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /terminals/{id} - Failed to delete terminal: terminal_id=%s, error=%v", terminalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /terminals/{id} - Terminal deleted successfully: terminal_id=%s, user_id=%d", terminalID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
