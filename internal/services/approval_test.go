package services

import (
	"testing"
	"time"

	"approval-system/internal/entities"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateLineItemStatuses(t *testing.T) {
	testCases := []struct {
		name        string
		items       []lineItemState
		wantChanged bool
		wantStatus  string
		wantReason  *string
	}{
		{
			name:        "все позиции одобрены - заявка одобрена",
			items:       []lineItemState{{Status: entities.ItemStatusApproved}, {Status: entities.ItemStatusApproved}},
			wantChanged: true,
			wantStatus:  entities.StatusApproved,
		},
		{
			name: "все отклонены - причины объединяются через точку с запятой",
			items: []lineItemState{
				{Status: entities.ItemStatusRejected, RejectionReason: utils.StringPtr("слишком дорого")},
				{Status: entities.ItemStatusRejected, RejectionReason: utils.StringPtr("нет бюджета")},
			},
			wantChanged: true,
			wantStatus:  entities.StatusRejected,
			wantReason:  utils.StringPtr("слишком дорого; нет бюджета"),
		},
		{
			name: "все отклонены без причин - подставляется общий текст",
			items: []lineItemState{
				{Status: entities.ItemStatusRejected},
				{Status: entities.ItemStatusRejected, RejectionReason: utils.StringPtr("")},
			},
			wantChanged: true,
			wantStatus:  entities.StatusRejected,
			wantReason:  utils.StringPtr("All attachments were rejected"),
		},
		{
			name: "смесь одобренных и отклоненных - частичное отклонение",
			items: []lineItemState{
				{Status: entities.ItemStatusApproved},
				{Status: entities.ItemStatusRejected, RejectionReason: utils.StringPtr("дубликат")},
			},
			wantChanged: true,
			wantStatus:  entities.StatusPartiallyRejected,
			wantReason:  utils.StringPtr("Some attachments were rejected"),
		},
		{
			name: "хотя бы одна позиция в ожидании - статус не меняется",
			items: []lineItemState{
				{Status: entities.ItemStatusApproved},
				{Status: entities.ItemStatusPending},
			},
			wantChanged: false,
		},
		{
			name:        "пустой список позиций - агрегация не запускается",
			items:       nil,
			wantChanged: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := aggregateLineItemStatuses(tc.items)

			assert.Equal(t, tc.wantChanged, outcome.Changed)
			if !tc.wantChanged {
				return
			}
			assert.Equal(t, tc.wantStatus, outcome.Status)
			if tc.wantReason == nil {
				assert.Nil(t, outcome.RejectionReason)
			} else {
				require.NotNil(t, outcome.RejectionReason)
				assert.Equal(t, *tc.wantReason, *outcome.RejectionReason)
			}
		})
	}
}

func TestStatusSideFields(t *testing.T) {
	prevBy := utils.StringPtr("MGR001")
	prevDate := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	prevReason := utils.StringPtr("старая причина")

	t.Run("APPROVED штампует утверждающего и дату", func(t *testing.T) {
		by, date, reason := statusSideFields(entities.StatusApproved,
			utils.StringPtr("MGR002"), nil, prevBy, &prevDate, prevReason)

		require.NotNil(t, by)
		assert.Equal(t, "MGR002", *by)
		require.NotNil(t, date)
		assert.WithinDuration(t, time.Now(), *date, time.Minute)
		assert.Equal(t, prevReason, reason)
	})

	t.Run("REJECTED записывает причину, не трогая прежний approvedBy", func(t *testing.T) {
		by, date, reason := statusSideFields(entities.StatusRejected,
			nil, utils.StringPtr("не согласовано"), prevBy, &prevDate, nil)

		assert.Equal(t, prevBy, by)
		assert.Equal(t, &prevDate, date)
		require.NotNil(t, reason)
		assert.Equal(t, "не согласовано", *reason)
	})

	t.Run("возврат в PENDING_APPROVAL очищает все три поля", func(t *testing.T) {
		by, date, reason := statusSideFields(entities.StatusPendingApproval,
			nil, nil, prevBy, &prevDate, prevReason)

		assert.Nil(t, by)
		assert.Nil(t, date)
		assert.Nil(t, reason)
	})

	t.Run("CANCELLED сохраняет прежние значения", func(t *testing.T) {
		by, date, reason := statusSideFields(entities.StatusCancelled,
			nil, nil, prevBy, &prevDate, prevReason)

		assert.Equal(t, prevBy, by)
		assert.Equal(t, &prevDate, date)
		assert.Equal(t, prevReason, reason)
	})
}

func TestItemRejectionReason(t *testing.T) {
	reason := utils.StringPtr("брак")

	assert.Equal(t, reason, itemRejectionReason(entities.ItemStatusRejected, reason))
	assert.Nil(t, itemRejectionReason(entities.ItemStatusApproved, reason))
	assert.Nil(t, itemRejectionReason(entities.ItemStatusRejected, nil))
	assert.Nil(t, itemRejectionReason(entities.ItemStatusRejected, utils.StringPtr("")))
}

func TestParseFlexibleDate(t *testing.T) {
	t.Run("полный RFC3339", func(t *testing.T) {
		parsed, err := parseFlexibleDate("2025-06-15T10:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC), parsed)
	})

	t.Run("короткая дата", func(t *testing.T) {
		parsed, err := parseFlexibleDate("2025-06-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("мусор - ошибка валидации с кодом 400", func(t *testing.T) {
		_, err := parseFlexibleDate("15/06/2025")
		require.Error(t, err)
		assert.Equal(t, 400, apperrors.StatusCode(err))
	})
}

func TestParseSubmittedDate(t *testing.T) {
	assert.WithinDuration(t, time.Now(), parseSubmittedDate(""), time.Minute)
	assert.WithinDuration(t, time.Now(), parseSubmittedDate("не дата"), time.Minute)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), parseSubmittedDate("2025-01-02"))
}
