package services

import (
	"context"

	"approval-system/internal/dto"
	"approval-system/internal/entities"
	"approval-system/internal/repositories"
)

type AvailabilityServiceInterface interface {
	Check(ctx context.Context, payload dto.AvailabilityCheckDTO) (*dto.AvailabilityCheckResponseDTO, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Availability, error)
}

type AvailabilityService struct {
	availabilityRepo repositories.AvailabilityRepositoryInterface
}

func NewAvailabilityService(availabilityRepo repositories.AvailabilityRepositoryInterface) AvailabilityServiceInterface {
	return &AvailabilityService{availabilityRepo: availabilityRepo}
}

// Check отвечает, свободен ли сотрудник в период, и перечисляет
// пересекающиеся интервалы недоступности.
func (s *AvailabilityService) Check(ctx context.Context, payload dto.AvailabilityCheckDTO) (*dto.AvailabilityCheckResponseDTO, error) {
	start, err := parseFlexibleDate(payload.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseFlexibleDate(payload.EndDate)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.availabilityRepo.FindOverlapping(ctx, payload.UserID, start, end)
	if err != nil {
		return nil, err
	}

	conflicts := make([]dto.AvailabilityConflictDTO, 0, len(overlapping))
	for _, a := range overlapping {
		conflicts = append(conflicts, dto.AvailabilityConflictDTO{
			StartDate: a.StartDate,
			EndDate:   a.EndDate,
			Reason:    a.Reason,
		})
	}
	return &dto.AvailabilityCheckResponseDTO{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *AvailabilityService) ListByUser(ctx context.Context, userID string) ([]entities.Availability, error) {
	return s.availabilityRepo.ListByUser(ctx, userID)
}
