package list_terminals

import (
	"net/http"

	"github.com/m04kA/SMC-TerminalService/internal/api/handlers"
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

// Handle GET /api/v1/terminals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /terminals - Failed to list terminals: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /terminals - Retrieved %d terminals", len(result.Terminals))
	handlers.RespondJSON(w, http.StatusOK, result)
}
