package entities

import "time"

// ReportRow - строка сводного отчета по заявкам всех типов.
type ReportRow struct {
	RequestID       string     `json:"requestId"`
	RequestType     string     `json:"requestType"`
	Status          string     `json:"status"`
	SubmittedDate   time.Time  `json:"submittedDate"`
	UserID          *string    `json:"userId,omitempty"`
	ManagerID       string     `json:"managerId"`
	Summary         string     `json:"summary"`
	ApprovedBy      *string    `json:"approvedBy,omitempty"`
	ApprovedDate    *time.Time `json:"approvedDate,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
}
