package dto

import "github.com/aarondl/null/v8"

// AttachmentPayload - файловая позиция в теле создания заявки.
// Файл к этому моменту уже загружен через /api/upload.
type AttachmentPayload struct {
	FileName    string  `json:"fileName" validate:"required"`
	Description string  `json:"description"`
	FileSize    string  `json:"fileSize"`
	FileType    string  `json:"fileType"`
	UploadDate  string  `json:"uploadDate"`
	FileURL     *string `json:"fileUrl"`
}

type SubmitterPayload struct {
	UserID           *string `json:"userId"`
	SubmittedBy      *string `json:"submittedBy"`
	SubmittedByEmail *string `json:"submittedByEmail"`
}

type ApprovingManagerPayload struct {
	ManagerID   string `json:"managerId" validate:"required"`
	ManagerName string `json:"managerName"`
}

type TravelInformationPayload struct {
	Destination string  `json:"destination" validate:"required"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	Reason      string  `json:"reason"`
	Duration    *string `json:"duration"`
}

type TravelExpensesPayload struct {
	FoodCosts   []AttachmentPayload `json:"foodCosts"`
	TravelCosts []AttachmentPayload `json:"travelCosts"`
	StayCosts   []AttachmentPayload `json:"stayCosts"`
}

type CreateTravelRequestDTO struct {
	RequestID         string                   `json:"requestId" validate:"required"`
	SubmittedDate     string                   `json:"submittedDate"`
	Status            string                   `json:"status"`
	Submitter         *SubmitterPayload        `json:"submitter"`
	TravelInformation TravelInformationPayload `json:"travelInformation" validate:"required"`
	ApprovingManager  ApprovingManagerPayload  `json:"approvingManager" validate:"required"`
	Expenses          TravelExpensesPayload    `json:"expenses"`
}

type CreateVacationRequestDTO struct {
	RequestID     string              `json:"requestId" validate:"required"`
	SubmittedDate string              `json:"submittedDate"`
	Status        string              `json:"status"`
	StartDate     string              `json:"startDate" validate:"required"`
	EndDate       string              `json:"endDate" validate:"required"`
	VacationType  string              `json:"vacationType"`
	Reason        string              `json:"reason"`
	UserID        string              `json:"userId" validate:"required"`
	ManagerID     string              `json:"managerId" validate:"required"`
	SubstituteID  string              `json:"substituteId" validate:"required"`
	Attachments   []AttachmentPayload `json:"attachments"`
}

type EquipmentItemPayload struct {
	Type   string      `json:"type"`
	Name   string      `json:"name" validate:"required"`
	Cost   null.String `json:"cost"`
	Amount int         `json:"amount" validate:"min=1"`
	Reason string      `json:"reason"`
}

type CreateEquipmentRequestDTO struct {
	RequestID        string                  `json:"requestId" validate:"required"`
	SubmittedDate    string                  `json:"submittedDate"`
	Status           string                  `json:"status"`
	UserID           *string                 `json:"userId"`
	ApprovingManager ApprovingManagerPayload `json:"approvingManager" validate:"required"`
	TotalCost        null.String             `json:"totalCost"`
	EquipmentItems   []EquipmentItemPayload  `json:"equipmentItems" validate:"required,min=1,dive"`
}

// LineItemStatusPatch - обновление одной позиции в составе частичного
// отклонения заявки.
type LineItemStatusPatch struct {
	ID              string  `json:"id" validate:"required"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason"`
}

// UpdateStatusDTO - явная смена статуса заявки менеджером.
type UpdateStatusDTO struct {
	Status          string                `json:"status" validate:"required"`
	ApprovedBy      *string               `json:"approvedBy"`
	RejectionReason *string               `json:"rejectionReason"`
	Attachments     []LineItemStatusPatch `json:"attachments"`
}

// UpdateLineItemStatusDTO - смена статуса отдельной позиции.
type UpdateLineItemStatusDTO struct {
	Status          string  `json:"status" validate:"required"`
	RejectionReason *string `json:"rejectionReason"`
	Category        string  `json:"category"`
}

// UpdateRequestDTO - частичное обновление полей заявки
// (например, пересылка другому менеджеру). managerId проходит через
// резолвер перед записью.
type UpdateRequestDTO struct {
	ManagerID       null.String `json:"managerId"`
	Reason          null.String `json:"reason"`
	Destination     null.String `json:"destination"`
	StartDate       null.String `json:"startDate"`
	EndDate         null.String `json:"endDate"`
	VacationType    null.String `json:"vacationType"`
	RejectionReason null.String `json:"rejectionReason"`
}
