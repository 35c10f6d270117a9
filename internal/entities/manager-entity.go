package entities

import "time"

// Manager создается либо явно при создании заявки, либо лениво
// резолвером менеджеров.
type Manager struct {
	ManagerID   string    `db:"manager_id" json:"managerId"`
	ManagerName string    `db:"manager_name" json:"managerName"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Department  *string   `db:"department" json:"department,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	TravelRequestCount    int `db:"-" json:"travelRequestCount"`
	EquipmentRequestCount int `db:"-" json:"equipmentRequestCount"`
}
