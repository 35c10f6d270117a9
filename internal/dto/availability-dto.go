package dto

import "time"

type AvailabilityCheckDTO struct {
	UserID    string `json:"userId" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type AvailabilityConflictDTO struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"reason"`
}

type AvailabilityCheckResponseDTO struct {
	Available bool                      `json:"available"`
	Conflicts []AvailabilityConflictDTO `json:"conflicts"`
}
