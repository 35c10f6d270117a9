package services

import (
	"strings"
	"time"

	"approval-system/internal/entities"
	apperrors "approval-system/pkg/errors"
)

// Клиентские тексты причин - исторический контракт, наружу уходят как есть.
const (
	mixedRejectionReason      = "Some attachments were rejected"
	allRejectedFallbackReason = "All attachments were rejected"
	rejectionNotePrefix       = "\n\n[REJECTED] "
)

// lineItemState - минимальный срез позиции для агрегации.
type lineItemState struct {
	Status          string
	RejectionReason *string
}

// aggregationOutcome - результат пересчета статуса заявки по позициям.
// Changed=false означает, что заявка остается в текущем статусе.
type aggregationOutcome struct {
	Changed         bool
	Status          string
	RejectionReason *string
}

// aggregateLineItemStatuses выводит статус заявки из статусов позиций.
// Правила: все APPROVED - заявка APPROVED; все REJECTED - заявка REJECTED
// с объединенными через "; " причинами; смесь без PENDING -
// PARTIALLY_REJECTED с общей причиной; хотя бы один PENDING - без
// изменений. Пустой список позиций агрегацию не запускает.
func aggregateLineItemStatuses(items []lineItemState) aggregationOutcome {
	if len(items) == 0 {
		return aggregationOutcome{}
	}

	var approved, rejected int
	reasons := make([]string, 0)
	for _, item := range items {
		switch item.Status {
		case entities.ItemStatusApproved:
			approved++
		case entities.ItemStatusRejected:
			rejected++
			if item.RejectionReason != nil && *item.RejectionReason != "" {
				reasons = append(reasons, *item.RejectionReason)
			}
		default:
			// Есть нерешенная позиция - заявка остается как есть.
			return aggregationOutcome{}
		}
	}

	switch {
	case approved == len(items):
		return aggregationOutcome{Changed: true, Status: entities.StatusApproved}
	case rejected == len(items):
		reason := strings.Join(reasons, "; ")
		if reason == "" {
			reason = allRejectedFallbackReason
		}
		return aggregationOutcome{Changed: true, Status: entities.StatusRejected, RejectionReason: &reason}
	default:
		reason := mixedRejectionReason
		return aggregationOutcome{Changed: true, Status: entities.StatusPartiallyRejected, RejectionReason: &reason}
	}
}

// statusSideFields вычисляет сопутствующие поля для явной смены статуса.
// APPROVED штампует approvedBy/approvedDate, REJECTED и
// PARTIALLY_REJECTED записывают причину, PENDING_APPROVAL очищает все
// три поля, CANCELLED ничего кроме статуса не трогает.
func statusSideFields(newStatus string, approvedBy, rejectionReason *string,
	prevApprovedBy *string, prevApprovedDate *time.Time, prevRejectionReason *string,
) (by *string, date *time.Time, reason *string) {
	switch newStatus {
	case entities.StatusApproved:
		now := time.Now()
		return approvedBy, &now, prevRejectionReason
	case entities.StatusRejected, entities.StatusPartiallyRejected:
		return prevApprovedBy, prevApprovedDate, rejectionReason
	case entities.StatusPendingApproval:
		return nil, nil, nil
	default: // CANCELLED
		return prevApprovedBy, prevApprovedDate, prevRejectionReason
	}
}

// itemRejectionReason: причина хранится только у отклоненных позиций.
func itemRejectionReason(status string, reason *string) *string {
	if status == entities.ItemStatusRejected && reason != nil && *reason != "" {
		return reason
	}
	return nil
}

// parseFlexibleDate принимает RFC3339 или короткую дату YYYY-MM-DD.
func parseFlexibleDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError("неверный формат даты: %s", value)
	}
	return t, nil
}

// parseSubmittedDate: пустое или нечитаемое значение заменяется текущим
// моментом - дата подачи обязана присутствовать всегда.
func parseSubmittedDate(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	if t, err := parseFlexibleDate(value); err == nil {
		return t
	}
	return time.Now()
}
