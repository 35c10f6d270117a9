package entities

import "time"

// ExpenseAttachment - файловая позиция командировочной заявки
// (чек за питание, проезд или проживание). Категория определяется
// коллекцией, в которой позиция лежит.
type ExpenseAttachment struct {
	ID              string    `db:"id" json:"id"`
	RequestPK       string    `db:"request_pk" json:"-"`
	FileName        string    `db:"file_name" json:"fileName"`
	Description     string    `db:"description" json:"description"`
	FileSize        string    `db:"file_size" json:"fileSize"`
	FileType        string    `db:"file_type" json:"fileType"`
	FileURL         *string   `db:"file_url" json:"fileUrl,omitempty"`
	UploadDate      time.Time `db:"upload_date" json:"uploadDate"`
	Status          string    `db:"status" json:"status"`
	RejectionReason *string   `db:"rejection_reason" json:"rejectionReason,omitempty"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`

	Category string `db:"-" json:"category"`
}

// FileAttachment - вложение отпускной заявки.
type FileAttachment struct {
	ID              string    `db:"id" json:"id"`
	RequestPK       string    `db:"request_pk" json:"-"`
	FileName        string    `db:"file_name" json:"fileName"`
	Description     string    `db:"description" json:"description"`
	FileSize        string    `db:"file_size" json:"fileSize"`
	FileType        string    `db:"file_type" json:"fileType"`
	FileURL         *string   `db:"file_url" json:"fileUrl,omitempty"`
	UploadDate      time.Time `db:"upload_date" json:"uploadDate"`
	Status          string    `db:"status" json:"status"`
	RejectionReason *string   `db:"rejection_reason" json:"rejectionReason,omitempty"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// EquipmentItem - закупаемая позиция заявки на оборудование.
type EquipmentItem struct {
	ID              string  `db:"id" json:"id"`
	RequestPK       string  `db:"request_pk" json:"-"`
	Type            string  `db:"type" json:"type"`
	Name            string  `db:"name" json:"name"`
	Cost            string  `db:"cost" json:"cost"`
	Amount          int     `db:"amount" json:"amount"`
	Reason          string  `db:"reason" json:"reason"`
	Status          string  `db:"status" json:"status"`
	RejectionReason *string `db:"rejection_reason" json:"rejectionReason,omitempty"`
}

// VacationComment - комментарий к отпускной заявке.
type VacationComment struct {
	ID        string    `db:"id" json:"id"`
	RequestPK string    `db:"request_pk" json:"-"`
	UserID    string    `db:"user_id" json:"userId"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
