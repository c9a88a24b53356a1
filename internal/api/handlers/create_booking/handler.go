package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TerminalService/internal/api/handlers"
	"github.com/m04kA/SMC-TerminalService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TerminalService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDates        = "некорректный формат дат, ожидается RFC 3339"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgTerminalNotFound    = "терминал не найден"
	msgTerminalNotBookable = "терминал недоступен для бронирования"
	msgTimeSlotConflict    = "интервал пересекается с существующим бронированием"
	msgInvalidPeriod       = "некорректный интервал бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTerminalNotFound):
			h.logger.Warn("POST /bookings - Terminal not found: terminal_id=%s", req.TerminalID)
			handlers.RespondNotFound(w, msgTerminalNotFound)

		case errors.Is(err, createBooking.ErrTerminalNotBookable):
			h.logger.Warn("POST /bookings - Terminal not bookable: terminal_id=%s", req.TerminalID)
			handlers.RespondError(w, http.StatusConflict, msgTerminalNotBookable)

		case errors.Is(err, createBooking.ErrTimeSlotConflict):
			h.logger.Warn("POST /bookings - Time slot conflict: terminal_id=%s, user_id=%d", req.TerminalID, userID)
			handlers.RespondError(w, http.StatusConflict, msgTimeSlotConflict)

		case errors.Is(err, createBooking.ErrInvalidPeriod):
			h.logger.Warn("POST /bookings - Invalid period: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%d", result.PublicID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
