package entities

import "time"

// Availability - интервал недоступности сотрудника. Создается
// автоматически при одобрении отпускной заявки (идемпотентно).
type Availability struct {
	ID               string    `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"userId"`
	StartDate        time.Time `db:"start_date" json:"startDate"`
	EndDate          time.Time `db:"end_date" json:"endDate"`
	AvailabilityType string    `db:"availability_type" json:"availabilityType"`
	Reason           string    `db:"reason" json:"reason"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}
