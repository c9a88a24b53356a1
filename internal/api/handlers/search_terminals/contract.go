package search_terminals

import (
	"context"

	searchTerminals "github.com/m04kA/SMC-TerminalService/internal/usecase/search_terminals"
)

type SearchTerminalsUseCase interface {
	Execute(ctx context.Context, req *searchTerminals.Request) (*searchTerminals.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
