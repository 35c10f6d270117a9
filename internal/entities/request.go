package entities

import "time"

// TravelRequest - заявка на возмещение командировочных расходов.
// Вложения разложены по трем коллекциям: питание, проезд, проживание.
type TravelRequest struct {
	ID               string     `db:"id" json:"id"`
	RequestID        string     `db:"request_id" json:"requestId"`
	Status           string     `db:"status" json:"status"`
	SubmittedDate    time.Time  `db:"submitted_date" json:"submittedDate"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
	ApprovedDate     *time.Time `db:"approved_date" json:"approvedDate,omitempty"`
	ApprovedBy       *string    `db:"approved_by" json:"approvedBy,omitempty"`
	RejectionReason  *string    `db:"rejection_reason" json:"rejectionReason,omitempty"`
	UserID           *string    `db:"user_id" json:"userId,omitempty"`
	SubmittedBy      *string    `db:"submitted_by" json:"submittedBy,omitempty"`
	SubmittedByEmail *string    `db:"submitted_by_email" json:"submittedByEmail,omitempty"`
	Destination      string     `db:"destination" json:"destination"`
	StartDate        string     `db:"start_date" json:"startDate"`
	EndDate          string     `db:"end_date" json:"endDate"`
	Reason           string     `db:"reason" json:"reason"`
	Duration         *string    `db:"duration" json:"duration,omitempty"`
	ManagerID        string     `db:"manager_id" json:"managerId"`

	Manager     *Manager            `db:"-" json:"manager,omitempty"`
	FoodCosts   []ExpenseAttachment `db:"-" json:"foodCosts"`
	TravelCosts []ExpenseAttachment `db:"-" json:"travelCosts"`
	StayCosts   []ExpenseAttachment `db:"-" json:"stayCosts"`
}

// AllExpenses собирает позиции всех трех коллекций; порядок стабильный.
func (r *TravelRequest) AllExpenses() []ExpenseAttachment {
	all := make([]ExpenseAttachment, 0, len(r.FoodCosts)+len(r.TravelCosts)+len(r.StayCosts))
	all = append(all, r.FoodCosts...)
	all = append(all, r.TravelCosts...)
	all = append(all, r.StayCosts...)
	return all
}

// VacationRequest - заявка на отпуск с вложениями и комментариями.
type VacationRequest struct {
	ID              string     `db:"id" json:"id"`
	RequestID       string     `db:"request_id" json:"requestId"`
	Status          string     `db:"status" json:"status"`
	SubmittedDate   time.Time  `db:"submitted_date" json:"submittedDate"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
	ApprovedDate    *time.Time `db:"approved_date" json:"approvedDate,omitempty"`
	ApprovedBy      *string    `db:"approved_by" json:"approvedBy,omitempty"`
	RejectionReason *string    `db:"rejection_reason" json:"rejectionReason,omitempty"`
	StartDate       time.Time  `db:"start_date" json:"startDate"`
	EndDate         time.Time  `db:"end_date" json:"endDate"`
	VacationType    string     `db:"vacation_type" json:"vacationType"`
	Reason          string     `db:"reason" json:"reason"`
	UserID          string     `db:"user_id" json:"userId"`
	ManagerID       string     `db:"manager_id" json:"managerId"`
	SubstituteID    string     `db:"substitute_id" json:"substituteId"`

	Manager     *Manager          `db:"-" json:"manager,omitempty"`
	Attachments []FileAttachment  `db:"-" json:"attachments"`
	Comments    []VacationComment `db:"-" json:"comments"`
}

// EquipmentRequest - заявка на закупку оборудования (без файлов).
type EquipmentRequest struct {
	ID              string     `db:"id" json:"id"`
	RequestID       string     `db:"request_id" json:"requestId"`
	Status          string     `db:"status" json:"status"`
	SubmittedDate   time.Time  `db:"submitted_date" json:"submittedDate"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
	ApprovedDate    *time.Time `db:"approved_date" json:"approvedDate,omitempty"`
	ApprovedBy      *string    `db:"approved_by" json:"approvedBy,omitempty"`
	RejectionReason *string    `db:"rejection_reason" json:"rejectionReason,omitempty"`
	UserID          *string    `db:"user_id" json:"userId,omitempty"`
	TotalCost       string     `db:"total_cost" json:"totalCost"`
	TotalItems      int        `db:"total_items" json:"totalItems"`
	ManagerID       string     `db:"manager_id" json:"managerId"`

	Manager        *Manager        `db:"-" json:"manager,omitempty"`
	EquipmentItems []EquipmentItem `db:"-" json:"equipmentItems"`
}

// RequestSummary - строка общей ленты заявок (travel + equipment).
type RequestSummary struct {
	ID            string      `json:"id"`
	RequestID     string      `json:"requestId"`
	Title         string      `json:"title"`
	Type          string      `json:"type"`
	From          string      `json:"from"`
	HasFiles      bool        `json:"hasFiles"`
	Status        string      `json:"status"`
	SubmittedDate time.Time   `json:"submittedDate"`
	Raw           interface{} `json:"raw,omitempty"`
}
