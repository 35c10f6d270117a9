package services

import (
	"context"
	"fmt"
	"sort"

	"approval-system/internal/entities"
	"approval-system/internal/repositories"
	"approval-system/pkg/types"
)

type RequestFeedServiceInterface interface {
	List(ctx context.Context, filter types.Filter) ([]entities.RequestSummary, uint64, error)
}

// RequestFeedService собирает общую ленту из командировочных заявок и
// заявок на оборудование - те два типа, которые исторически показывает
// сводный список.
type RequestFeedService struct {
	travelRepo    repositories.TravelRequestRepositoryInterface
	equipmentRepo repositories.EquipmentRequestRepositoryInterface
}

func NewRequestFeedService(
	travelRepo repositories.TravelRequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRequestRepositoryInterface,
) RequestFeedServiceInterface {
	return &RequestFeedService{travelRepo: travelRepo, equipmentRepo: equipmentRepo}
}

func (s *RequestFeedService) List(ctx context.Context, filter types.Filter) ([]entities.RequestSummary, uint64, error) {
	// Каждому источнику нужен запас offset+limit строк: после слияния
	// срез окна берется по объединенному порядку.
	wide := filter
	wide.Limit = filter.Limit + filter.Offset
	wide.Offset = 0

	travel, travelTotal, err := s.travelRepo.List(ctx, wide)
	if err != nil {
		return nil, 0, err
	}
	equipment, equipmentTotal, err := s.equipmentRepo.List(ctx, wide)
	if err != nil {
		return nil, 0, err
	}

	merged := make([]entities.RequestSummary, 0, len(travel)+len(equipment))
	for i := range travel {
		merged = append(merged, travelSummary(&travel[i]))
	}
	for i := range equipment {
		merged = append(merged, equipmentSummary(&equipment[i]))
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SubmittedDate.After(merged[j].SubmittedDate)
	})

	if filter.Offset >= len(merged) {
		return []entities.RequestSummary{}, travelTotal + equipmentTotal, nil
	}
	merged = merged[filter.Offset:]
	if filter.Limit > 0 && len(merged) > filter.Limit {
		merged = merged[:filter.Limit]
	}
	return merged, travelTotal + equipmentTotal, nil
}

func travelSummary(req *entities.TravelRequest) entities.RequestSummary {
	from := ""
	if req.SubmittedBy != nil {
		from = *req.SubmittedBy
	} else if req.UserID != nil {
		from = *req.UserID
	}
	return entities.RequestSummary{
		ID:            req.ID,
		RequestID:     req.RequestID,
		Title:         fmt.Sprintf("Travel to %s", req.Destination),
		Type:          entities.RequestTypeTravel,
		From:          from,
		HasFiles:      len(req.AllExpenses()) > 0,
		Status:        req.Status,
		SubmittedDate: req.SubmittedDate,
		Raw:           req,
	}
}

func equipmentSummary(req *entities.EquipmentRequest) entities.RequestSummary {
	from := ""
	if req.UserID != nil {
		from = *req.UserID
	}
	return entities.RequestSummary{
		ID:            req.ID,
		RequestID:     req.RequestID,
		Title:         fmt.Sprintf("Equipment Request (%d items)", req.TotalItems),
		Type:          entities.RequestTypeEquipment,
		From:          from,
		HasFiles:      false,
		Status:        req.Status,
		SubmittedDate: req.SubmittedDate,
		Raw:           req,
	}
}
