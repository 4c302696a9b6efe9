package dto

import "math"

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// PageRequest carries the page and limit query parameters.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the row offset of the page. It saturates at math.MaxInt
// rather than wrapping negative.
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// OKResponse is returned by deletes.
type OKResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
