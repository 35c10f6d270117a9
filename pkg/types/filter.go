package types

import "time"

// Filter describes query parameters for filtering and pagination.
type Filter struct {
	Status    string
	ManagerID string
	UserID    string
	Limit     int
	Offset    int
}

// Pagination represents pagination metadata returned alongside lists.
type Pagination struct {
	Total  uint64 `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// ReportFilter - фильтры сводного отчета по заявкам.
type ReportFilter struct {
	Types    []string
	Statuses []string
	DateFrom *time.Time
	DateTo   *time.Time
}
