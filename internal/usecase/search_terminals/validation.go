package search_terminals

import (
	"fmt"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Отсутствие опциональных фильтров - не ошибка, они просто расширяют выборку
func validateRequest(req *Request) error {
	if req.Latitude < domain.MinLatitude || req.Latitude > domain.MaxLatitude {
		return fmt.Errorf("%w: latitude must be within [%v, %v]", ErrInvalidInput, domain.MinLatitude, domain.MaxLatitude)
	}

	if req.Longitude < domain.MinLongitude || req.Longitude > domain.MaxLongitude {
		return fmt.Errorf("%w: longitude must be within [%v, %v]", ErrInvalidInput, domain.MinLongitude, domain.MaxLongitude)
	}

	if req.RadiusKm != nil {
		if *req.RadiusKm < 0 {
			return fmt.Errorf("%w: radius must be non-negative", ErrInvalidInput)
		}
		if *req.RadiusKm > domain.MaxSearchRadiusKm {
			return fmt.Errorf("%w: radius must not exceed %v km", ErrInvalidInput, domain.MaxSearchRadiusKm)
		}
	}

	// Окно задаётся только целиком
	if (req.WindowStart == nil) != (req.WindowEnd == nil) {
		return fmt.Errorf("%w: window start and end must be supplied together", ErrInvalidInput)
	}

	if req.HasWindow() && req.WindowEnd.Before(*req.WindowStart) {
		return fmt.Errorf("%w: window end must not precede window start", ErrInvalidInput)
	}

	return nil
}
