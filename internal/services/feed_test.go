package services

import (
	"context"
	"testing"
	"time"

	"approval-system/internal/entities"
	"approval-system/internal/repositories"
	"approval-system/pkg/types"
	"approval-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Фейки реализуют только List - остальное лента не вызывает.
type fakeTravelRepo struct {
	repositories.TravelRequestRepositoryInterface
	requests []entities.TravelRequest
}

func (r *fakeTravelRepo) List(_ context.Context, filter types.Filter) ([]entities.TravelRequest, uint64, error) {
	out := r.requests
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, uint64(len(r.requests)), nil
}

type fakeEquipmentRepo struct {
	repositories.EquipmentRequestRepositoryInterface
	requests []entities.EquipmentRequest
}

func (r *fakeEquipmentRepo) List(_ context.Context, filter types.Filter) ([]entities.EquipmentRequest, uint64, error) {
	out := r.requests
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, uint64(len(r.requests)), nil
}

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestRequestFeedService_List(t *testing.T) {
	ctx := context.Background()

	travelRepo := &fakeTravelRepo{requests: []entities.TravelRequest{
		{ID: "t1", RequestID: "TRV-1", Destination: "Душанбе", Status: entities.StatusPendingApproval,
			SubmittedDate: day(10), SubmittedBy: utils.StringPtr("Alice Cooper"),
			FoodCosts: []entities.ExpenseAttachment{{ID: "e1"}}},
		{ID: "t2", RequestID: "TRV-2", Destination: "Худжанд", Status: entities.StatusApproved, SubmittedDate: day(5)},
	}}
	equipmentRepo := &fakeEquipmentRepo{requests: []entities.EquipmentRequest{
		{ID: "q1", RequestID: "EQP-1", TotalItems: 3, Status: entities.StatusPendingApproval,
			SubmittedDate: day(7), UserID: utils.StringPtr("USR001")},
	}}

	svc := NewRequestFeedService(travelRepo, equipmentRepo)

	t.Run("слияние двух источников по дате подачи, новые сверху", func(t *testing.T) {
		feed, total, err := svc.List(ctx, types.Filter{Limit: 10})
		require.NoError(t, err)

		assert.Equal(t, uint64(3), total)
		require.Len(t, feed, 3)
		assert.Equal(t, "TRV-1", feed[0].RequestID)
		assert.Equal(t, "EQP-1", feed[1].RequestID)
		assert.Equal(t, "TRV-2", feed[2].RequestID)
	})

	t.Run("заголовки и признак файлов", func(t *testing.T) {
		feed, _, err := svc.List(ctx, types.Filter{Limit: 10})
		require.NoError(t, err)

		assert.Equal(t, "Travel to Душанбе", feed[0].Title)
		assert.Equal(t, "Alice Cooper", feed[0].From)
		assert.True(t, feed[0].HasFiles)

		assert.Equal(t, "Equipment Request (3 items)", feed[1].Title)
		assert.Equal(t, "USR001", feed[1].From)
		assert.False(t, feed[1].HasFiles)
	})

	t.Run("окно offset/limit берется по объединенному порядку", func(t *testing.T) {
		feed, total, err := svc.List(ctx, types.Filter{Limit: 1, Offset: 1})
		require.NoError(t, err)

		assert.Equal(t, uint64(3), total)
		require.Len(t, feed, 1)
		assert.Equal(t, "EQP-1", feed[0].RequestID)
	})

	t.Run("offset за пределами данных дает пустую страницу", func(t *testing.T) {
		feed, total, err := svc.List(ctx, types.Filter{Limit: 10, Offset: 100})
		require.NoError(t, err)

		assert.Equal(t, uint64(3), total)
		assert.Empty(t, feed)
	})
}
