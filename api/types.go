package api

import (
	"github.com/velardesign/portfolio-backend/models"
)

// Pagination describes the full matching set for a filtered listing,
// independent of which page was requested.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ProjectListResponse is the listing payload: one page of projects plus the
// pagination metadata over the same filter predicate.
type ProjectListResponse struct {
	Projects   []models.Project `json:"projects"`
	Pagination Pagination       `json:"pagination"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
