package update_terminal_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TerminalService/internal/api/handlers"
	"github.com/m04kA/SMC-TerminalService/internal/api/middleware"
	"github.com/m04kA/SMC-TerminalService/internal/service/terminals"
	"github.com/m04kA/SMC-TerminalService/internal/service/terminals/models"
)

const (
	msgInvalidTerminalID  = "некорректный ID терминала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "терминал не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidStatus      = "некорректный статус терминала"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

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

// Handle PATCH /api/v1/terminals/{terminalId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	terminalID, err := uuid.Parse(vars["terminalId"])
	if err != nil {
		h.logger.Warn("PATCH /terminals/{id}/status - Invalid terminal ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTerminalID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /terminals/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /terminals/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), terminalID, &models.UpdateStatusRequest{
		UserID: userID,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, terminals.ErrTerminalNotFound):
			h.logger.Warn("PATCH /terminals/{id}/status - Terminal not found: terminal_id=%s", terminalID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, terminals.ErrAccessDenied):
			h.logger.Warn("PATCH /terminals/{id}/status - Access denied: terminal_id=%s, user_id=%d", terminalID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, terminals.ErrInvalidStatus):
			h.logger.Warn("PATCH /terminals/{id}/status - Invalid status=%s: terminal_id=%s", req.Status, terminalID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /terminals/{id}/status - Failed to update status: terminal_id=%s, error=%v", terminalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /terminals/{id}/status - Status updated successfully: terminal_id=%s, status=%s, user_id=%d",
		terminalID, req.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
