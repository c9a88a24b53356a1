package create_terminal

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TerminalService/internal/api/handlers"
	"github.com/m04kA/SMC-TerminalService/internal/api/middleware"
	"github.com/m04kA/SMC-TerminalService/internal/service/terminals"
	"github.com/m04kA/SMC-TerminalService/internal/service/terminals/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidStatus      = "некорректный статус терминала"
)

// CreateTerminalRequest HTTP request model
type CreateTerminalRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    *string `json:"status,omitempty"`
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

// Handle POST /api/v1/terminals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /terminals - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateTerminalRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /terminals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateTerminalRequest{
		OwnerID:   userID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, terminals.ErrInvalidStatus):
			h.logger.Warn("POST /terminals - Invalid status: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, terminals.ErrInvalidInput):
			h.logger.Warn("POST /terminals - Invalid input: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /terminals - Failed to create terminal: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /terminals - Terminal created successfully: terminal_id=%s, owner_id=%d", result.PublicID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
