package entities

// --- СТАТУСЫ ЗАЯВОК ---
const (
	StatusPendingApproval   = "PENDING_APPROVAL"
	StatusApproved          = "APPROVED"
	StatusRejected          = "REJECTED"
	StatusPartiallyRejected = "PARTIALLY_REJECTED"
	StatusCancelled         = "CANCELLED"
)

// --- СТАТУСЫ ПОЗИЦИЙ/ВЛОЖЕНИЙ (свой словарь, не совпадает с заявочным) ---
const (
	ItemStatusPending  = "PENDING"
	ItemStatusApproved = "APPROVED"
	ItemStatusRejected = "REJECTED"
)

var requestStatuses = []string{
	StatusPendingApproval,
	StatusApproved,
	StatusRejected,
	StatusPartiallyRejected,
	StatusCancelled,
}

var itemStatuses = []string{
	ItemStatusPending,
	ItemStatusApproved,
	ItemStatusRejected,
}

// IsValidRequestStatus проверяет статус заявки по допустимому словарю.
func IsValidRequestStatus(status string) bool {
	for _, s := range requestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidItemStatus проверяет статус позиции по допустимому словарю.
func IsValidItemStatus(status string) bool {
	for _, s := range itemStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsResolvedRequestStatus: заявка в этом статусе больше не агрегируется.
// Единственный путь назад - явный сброс в PENDING_APPROVAL.
func IsResolvedRequestStatus(status string) bool {
	return status != StatusPendingApproval
}

// --- ТИПЫ ЗАЯВОК ---
const (
	RequestTypeTravel    = "TRAVEL"
	RequestTypeVacation  = "VACATION"
	RequestTypeEquipment = "EQUIPMENT"
)

// --- КАТЕГОРИИ ВЛОЖЕНИЙ КОМАНДИРОВОЧНОЙ ЗАЯВКИ ---
const (
	CategoryFoodCosts   = "foodCosts"
	CategoryTravelCosts = "travelCosts"
	CategoryStayCosts   = "stayCosts"
)

// NormalizeCategory приводит клиентскую категорию к внутренней.
// Принимаются и человекочитаемые варианты ("Food Costs"), и внутренние
// ключи; всё незнакомое намеренно сводится к foodCosts - исторический
// контракт исходной системы, который внешние клиенты уже ожидают.
func NormalizeCategory(category string) string {
	switch category {
	case CategoryFoodCosts, "Food Costs":
		return CategoryFoodCosts
	case CategoryTravelCosts, "Travel Costs":
		return CategoryTravelCosts
	case CategoryStayCosts, "Stay Costs":
		return CategoryStayCosts
	default:
		return CategoryFoodCosts
	}
}

// --- ТИПЫ НЕДОСТУПНОСТИ ---
const (
	AvailabilityTypeVacation = "VACATION"
)

// --- РОЛИ ПОЛЬЗОВАТЕЛЕЙ ---
const (
	RoleUser    = "USER"
	RoleManager = "MANAGER"
)
