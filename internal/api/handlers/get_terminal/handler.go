package get_terminal

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TerminalService/internal/api/handlers"
	"github.com/m04kA/SMC-TerminalService/internal/service/terminals"
)

const (
	msgInvalidTerminalID = "некорректный ID терминала"
	msgNotFound          = "терминал не найден"
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

// Handle GET /api/v1/terminals/{terminalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	terminalID, err := uuid.Parse(vars["terminalId"])
	if err != nil {
		h.logger.Warn("GET /terminals/{id} - Invalid terminal ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTerminalID)
		return
	}

	terminal, err := h.service.GetByPublicID(r.Context(), terminalID)
	if err != nil {
		switch {
		case errors.Is(err, terminals.ErrTerminalNotFound):
			h.logger.Warn("GET /terminals/{id} - Terminal not found: terminal_id=%s", terminalID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /terminals/{id} - Failed to get terminal: terminal_id=%s, error=%v", terminalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /terminals/{id} - Terminal retrieved successfully: terminal_id=%s", terminalID)
	handlers.RespondJSON(w, http.StatusOK, terminal)
}
