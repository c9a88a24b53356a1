package terminal

import "errors"

var (
	// ErrTerminalNotFound возвращается, когда терминал не найден
	ErrTerminalNotFound = errors.New("terminal.repository: terminal not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("terminal.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("terminal.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("terminal.repository: failed to scan row")

	// ErrInvalidStatus возвращается при попытке записать недопустимый статус
	ErrInvalidStatus = errors.New("terminal.repository: invalid terminal status")
)
