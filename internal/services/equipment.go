package services

import (
	"context"

	"approval-system/internal/dto"
	"approval-system/internal/entities"
	"approval-system/internal/repositories"
	"approval-system/pkg/config"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/eventbus"
	"approval-system/pkg/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EquipmentRequestServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateEquipmentRequestDTO) (*entities.EquipmentRequest, error)
	List(ctx context.Context, filter types.Filter) ([]entities.EquipmentRequest, uint64, error)
	GetByRequestID(ctx context.Context, requestID string) (*entities.EquipmentRequest, error)
	SetStatus(ctx context.Context, requestID string, payload dto.UpdateStatusDTO) (*entities.EquipmentRequest, error)
	SetItemStatus(ctx context.Context, requestID, itemID string, payload dto.UpdateLineItemStatusDTO) (*entities.EquipmentRequest, error)
	UpdateFields(ctx context.Context, requestID string, payload dto.UpdateRequestDTO) (*entities.EquipmentRequest, error)
	Delete(ctx context.Context, requestID string) error
}

// EquipmentRequestService - заявки на оборудование. Файлов у них нет,
// поэтому удаление не трогает хранилище вложений.
type EquipmentRequestService struct {
	txManager     repositories.TxManagerInterface
	equipmentRepo repositories.EquipmentRequestRepositoryInterface
	managerSvc    ManagerServiceInterface
	bus           *eventbus.Bus
	cfg           *config.UploadsConfig
	logger        *zap.Logger
}

func NewEquipmentRequestService(
	txManager repositories.TxManagerInterface,
	equipmentRepo repositories.EquipmentRequestRepositoryInterface,
	managerSvc ManagerServiceInterface,
	bus *eventbus.Bus,
	cfg *config.UploadsConfig,
	logger *zap.Logger,
) EquipmentRequestServiceInterface {
	return &EquipmentRequestService{
		txManager:     txManager,
		equipmentRepo: equipmentRepo,
		managerSvc:    managerSvc,
		bus:           bus,
		cfg:           cfg,
		logger:        logger,
	}
}

func (s *EquipmentRequestService) Create(ctx context.Context, payload dto.CreateEquipmentRequestDTO) (*entities.EquipmentRequest, error) {
	status := payload.Status
	if status == "" {
		status = entities.StatusPendingApproval
	}
	if !entities.IsValidRequestStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	managerID := s.managerSvc.Resolve(ctx, payload.ApprovingManager.ManagerID)
	if _, err := s.managerSvc.Ensure(ctx, managerID, payload.ApprovingManager.ManagerName); err != nil {
		return nil, err
	}

	req := &entities.EquipmentRequest{
		ID:            uuid.NewString(),
		RequestID:     payload.RequestID,
		Status:        status,
		SubmittedDate: parseSubmittedDate(payload.SubmittedDate),
		UserID:        payload.UserID,
		TotalCost:     payload.TotalCost.String,
		TotalItems:    len(payload.EquipmentItems),
		ManagerID:     managerID,
	}
	for _, item := range payload.EquipmentItems {
		req.EquipmentItems = append(req.EquipmentItems, entities.EquipmentItem{
			ID:     uuid.NewString(),
			Type:   item.Type,
			Name:   item.Name,
			Cost:   item.Cost.String,
			Amount: item.Amount,
			Reason: item.Reason,
			Status: entities.ItemStatusPending,
		})
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := repositories.RegisterRequestIDInTx(ctx, tx, payload.RequestID, entities.RequestTypeEquipment); err != nil {
			return err
		}
		return s.equipmentRepo.CreateInTx(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, RequestCreatedEvent{RequestID: req.RequestID, RequestType: entities.RequestTypeEquipment})
	return s.equipmentRepo.FindByRequestID(ctx, req.RequestID)
}

func (s *EquipmentRequestService) List(ctx context.Context, filter types.Filter) ([]entities.EquipmentRequest, uint64, error) {
	return s.equipmentRepo.List(ctx, filter)
}

func (s *EquipmentRequestService) GetByRequestID(ctx context.Context, requestID string) (*entities.EquipmentRequest, error) {
	return s.equipmentRepo.FindByRequestID(ctx, requestID)
}

func (s *EquipmentRequestService) SetStatus(ctx context.Context, requestID string, payload dto.UpdateStatusDTO) (*entities.EquipmentRequest, error) {
	if !entities.IsValidRequestStatus(payload.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, requestID)
		if err != nil {
			return err
		}

		by, date, reason := statusSideFields(payload.Status, payload.ApprovedBy, payload.RejectionReason,
			req.ApprovedBy, req.ApprovedDate, req.RejectionReason)
		if err := s.equipmentRepo.SetStatusInTx(ctx, tx, req.ID, payload.Status, by, date, reason); err != nil {
			return err
		}

		if payload.Status == entities.StatusPartiallyRejected {
			for _, patch := range payload.Attachments {
				patchReason := ""
				if patch.RejectionReason != nil {
					patchReason = *patch.RejectionReason
				}
				if s.cfg.AppendRejectionNote {
					if err := s.equipmentRepo.AppendItemRejectionNoteInTx(ctx, tx, patch.ID, rejectionNotePrefix+patchReason); err != nil {
						return err
					}
					continue
				}
				status := patch.Status
				if status == "" {
					status = entities.ItemStatusRejected
				}
				if !entities.IsValidItemStatus(status) {
					return apperrors.ErrInvalidStatus
				}
				if err := s.equipmentRepo.UpdateItemStatusInTx(ctx, tx, patch.ID, status,
					itemRejectionReason(status, patch.RejectionReason)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, RequestStatusChangedEvent{
		RequestID: requestID, RequestType: entities.RequestTypeEquipment, Status: payload.Status,
	})
	return s.equipmentRepo.FindByRequestID(ctx, requestID)
}

func (s *EquipmentRequestService) SetItemStatus(ctx context.Context, requestID, itemID string, payload dto.UpdateLineItemStatusDTO) (*entities.EquipmentRequest, error) {
	if !entities.IsValidItemStatus(payload.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	var statusChangedTo string
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.equipmentRepo.FindForUpdateInTx(ctx, tx, requestID)
		if err != nil {
			return err
		}

		found := false
		for _, item := range req.EquipmentItems {
			if item.ID == itemID {
				found = true
				break
			}
		}
		if !found {
			return apperrors.ErrNotFound
		}

		if err := s.equipmentRepo.UpdateItemStatusInTx(ctx, tx, itemID, payload.Status,
			itemRejectionReason(payload.Status, payload.RejectionReason)); err != nil {
			return err
		}

		if entities.IsResolvedRequestStatus(req.Status) {
			return nil
		}

		items := make([]lineItemState, 0, len(req.EquipmentItems))
		for _, item := range req.EquipmentItems {
			state := lineItemState{Status: item.Status, RejectionReason: item.RejectionReason}
			if item.ID == itemID {
				state.Status = payload.Status
				state.RejectionReason = itemRejectionReason(payload.Status, payload.RejectionReason)
			}
			items = append(items, state)
		}

		outcome := aggregateLineItemStatuses(items)
		if !outcome.Changed {
			return nil
		}
		reason := req.RejectionReason
		if outcome.RejectionReason != nil {
			reason = outcome.RejectionReason
		}
		if err := s.equipmentRepo.SetStatusInTx(ctx, tx, req.ID, outcome.Status, req.ApprovedBy, req.ApprovedDate, reason); err != nil {
			return err
		}
		statusChangedTo = outcome.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusChangedTo != "" {
		s.bus.Publish(ctx, RequestStatusChangedEvent{
			RequestID: requestID, RequestType: entities.RequestTypeEquipment, Status: statusChangedTo,
		})
	}
	return s.equipmentRepo.FindByRequestID(ctx, requestID)
}

func (s *EquipmentRequestService) UpdateFields(ctx context.Context, requestID string, payload dto.UpdateRequestDTO) (*entities.EquipmentRequest, error) {
	if payload.ManagerID.Valid {
		payload.ManagerID.String = s.managerSvc.Resolve(ctx, payload.ManagerID.String)
	}
	if err := s.equipmentRepo.UpdateFields(ctx, requestID, payload); err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindByRequestID(ctx, requestID)
}

func (s *EquipmentRequestService) Delete(ctx context.Context, requestID string) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.equipmentRepo.DeleteInTx(ctx, tx, requestID)
	})
}
