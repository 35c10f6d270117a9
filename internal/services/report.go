package services

import (
	"context"

	"approval-system/internal/entities"
	"approval-system/internal/repositories"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/types"
)

type ReportServiceInterface interface {
	GetReport(ctx context.Context, filter types.ReportFilter) ([]entities.ReportRow, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) GetReport(ctx context.Context, filter types.ReportFilter) ([]entities.ReportRow, error) {
	for _, t := range filter.Types {
		if t != entities.RequestTypeTravel && t != entities.RequestTypeVacation && t != entities.RequestTypeEquipment {
			return nil, apperrors.NewInvalidInputError("неизвестный тип заявки: %s", t)
		}
	}
	return s.reportRepo.GetReport(ctx, filter)
}
