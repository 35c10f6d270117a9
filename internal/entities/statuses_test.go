package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRequestStatus(t *testing.T) {
	for _, s := range []string{StatusPendingApproval, StatusApproved, StatusRejected, StatusPartiallyRejected, StatusCancelled} {
		assert.True(t, IsValidRequestStatus(s), s)
	}
	assert.False(t, IsValidRequestStatus("PENDING"), "словарь позиций не должен приниматься для заявок")
	assert.False(t, IsValidRequestStatus(""))
}

func TestIsValidItemStatus(t *testing.T) {
	for _, s := range []string{ItemStatusPending, ItemStatusApproved, ItemStatusRejected} {
		assert.True(t, IsValidItemStatus(s), s)
	}
	assert.False(t, IsValidItemStatus(StatusPartiallyRejected), "PARTIALLY_REJECTED есть только у заявок")
}

func TestIsResolvedRequestStatus(t *testing.T) {
	assert.False(t, IsResolvedRequestStatus(StatusPendingApproval))
	assert.True(t, IsResolvedRequestStatus(StatusApproved))
	assert.True(t, IsResolvedRequestStatus(StatusRejected))
	assert.True(t, IsResolvedRequestStatus(StatusPartiallyRejected))
	assert.True(t, IsResolvedRequestStatus(StatusCancelled))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, CategoryFoodCosts, NormalizeCategory("foodCosts"))
	assert.Equal(t, CategoryFoodCosts, NormalizeCategory("Food Costs"))
	assert.Equal(t, CategoryTravelCosts, NormalizeCategory("Travel Costs"))
	assert.Equal(t, CategoryStayCosts, NormalizeCategory("stayCosts"))

	// Незнакомая категория сводится к foodCosts.
	assert.Equal(t, CategoryFoodCosts, NormalizeCategory("hotelCosts"))
	assert.Equal(t, CategoryFoodCosts, NormalizeCategory(""))
}
