package search_terminals

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TerminalService/internal/api/handlers"
	searchTerminals "github.com/m04kA/SMC-TerminalService/internal/usecase/search_terminals"
)

const (
	msgInvalidQuery = "некорректные параметры поиска"
)

type Handler struct {
	useCase SearchTerminalsUseCase
	logger  Logger
}

func NewHandler(useCase SearchTerminalsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/terminals/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /terminals/search - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchTerminals.ErrInvalidInput):
			h.logger.Warn("GET /terminals/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /terminals/search - Failed to search terminals: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /terminals/search - Found %d terminals", len(result.Terminals))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
