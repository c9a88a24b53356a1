package search_terminals

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	searchTerminals "github.com/m04kA/SMC-TerminalService/internal/usecase/search_terminals"
)

// TerminalResponse HTTP модель найденного терминала
type TerminalResponse struct {
	ID         string  `json:"id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Status     string  `json:"status"`
	Occupied   bool    `json:"occupied"`
	DistanceKm float64 `json:"distanceKm"`
}

// SearchResponse HTTP модель ответа поиска
type SearchResponse struct {
	Terminals []TerminalResponse `json:"terminals"`
}

// parseQuery разбирает query-параметры поиска в модель use case
// Обязательны только координаты центра, остальные фильтры опциональны
func parseQuery(query url.Values) (*searchTerminals.Request, error) {
	req := &searchTerminals.Request{}

	lon, err := strconv.ParseFloat(query.Get("longitude"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %w", err)
	}
	req.Longitude = lon

	lat, err := strconv.ParseFloat(query.Get("latitude"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %w", err)
	}
	req.Latitude = lat

	if raw := query.Get("radiusKm"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid radiusKm: %w", err)
		}
		req.RadiusKm = &radius
	}

	if raw := query.Get("occupied"); raw != "" {
		occupied, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid occupied: %w", err)
		}
		req.Occupied = &occupied
	}

	if raw := query.Get("windowStart"); raw != "" {
		start, err := time.Parse(domain.DateTimeFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid windowStart: %w", err)
		}
		req.WindowStart = &start
	}

	if raw := query.Get("windowEnd"); raw != "" {
		end, err := time.Parse(domain.DateTimeFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid windowEnd: %w", err)
		}
		req.WindowEnd = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchTerminals.Response) *SearchResponse {
	out := &SearchResponse{Terminals: make([]TerminalResponse, 0, len(resp.Terminals))}
	for _, t := range resp.Terminals {
		out.Terminals = append(out.Terminals, TerminalResponse{
			ID:         t.PublicID.String(),
			Latitude:   t.Latitude,
			Longitude:  t.Longitude,
			Status:     t.Status,
			Occupied:   t.Occupied,
			DistanceKm: t.DistanceKm,
		})
	}
	return out
}
