package services

import (
	"context"
	"sync"

	"approval-system/internal/dto"
	"approval-system/internal/entities"
	"approval-system/internal/repositories"
	"approval-system/pkg/config"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/eventbus"
	"approval-system/pkg/filestorage"
	"approval-system/pkg/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TravelRequestServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateTravelRequestDTO, origin string) (*entities.TravelRequest, error)
	List(ctx context.Context, filter types.Filter) ([]entities.TravelRequest, uint64, error)
	GetByRequestID(ctx context.Context, requestID string) (*entities.TravelRequest, error)
	SetStatus(ctx context.Context, requestID string, payload dto.UpdateStatusDTO) (*entities.TravelRequest, error)
	SetExpenseStatus(ctx context.Context, requestID, expenseID string, payload dto.UpdateLineItemStatusDTO) (*entities.TravelRequest, error)
	UpdateFields(ctx context.Context, requestID string, payload dto.UpdateRequestDTO) (*entities.TravelRequest, error)
	Delete(ctx context.Context, requestID string) error
}

type TravelRequestService struct {
	txManager   repositories.TxManagerInterface
	travelRepo  repositories.TravelRequestRepositoryInterface
	managerSvc  ManagerServiceInterface
	fileStorage filestorage.FileStorageInterface
	bus         *eventbus.Bus
	cfg         *config.UploadsConfig
	logger      *zap.Logger
}

func NewTravelRequestService(
	txManager repositories.TxManagerInterface,
	travelRepo repositories.TravelRequestRepositoryInterface,
	managerSvc ManagerServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	bus *eventbus.Bus,
	cfg *config.UploadsConfig,
	logger *zap.Logger,
) TravelRequestServiceInterface {
	return &TravelRequestService{
		txManager:   txManager,
		travelRepo:  travelRepo,
		managerSvc:  managerSvc,
		fileStorage: fileStorage,
		bus:         bus,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *TravelRequestService) Create(ctx context.Context, payload dto.CreateTravelRequestDTO, origin string) (*entities.TravelRequest, error) {
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

	req := &entities.TravelRequest{
		ID:            uuid.NewString(),
		RequestID:     payload.RequestID,
		Status:        status,
		SubmittedDate: parseSubmittedDate(payload.SubmittedDate),
		Destination:   payload.TravelInformation.Destination,
		StartDate:     payload.TravelInformation.StartDate,
		EndDate:       payload.TravelInformation.EndDate,
		Reason:        payload.TravelInformation.Reason,
		Duration:      payload.TravelInformation.Duration,
		ManagerID:     managerID,
	}
	if payload.Submitter != nil {
		req.UserID = payload.Submitter.UserID
		req.SubmittedBy = payload.Submitter.SubmittedBy
		req.SubmittedByEmail = payload.Submitter.SubmittedByEmail
	}

	req.FoodCosts = s.buildExpenses(payload.Expenses.FoodCosts, entities.CategoryFoodCosts, payload.RequestID, origin)
	req.TravelCosts = s.buildExpenses(payload.Expenses.TravelCosts, entities.CategoryTravelCosts, payload.RequestID, origin)
	req.StayCosts = s.buildExpenses(payload.Expenses.StayCosts, entities.CategoryStayCosts, payload.RequestID, origin)

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := repositories.RegisterRequestIDInTx(ctx, tx, payload.RequestID, entities.RequestTypeTravel); err != nil {
			return err
		}
		return s.travelRepo.CreateInTx(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}

	// Файлы переносятся из temp уже после фиксации строк: при дубликате
	// requestId staged-копии остаются на месте.
	s.commitStagedExpenses(req)

	s.bus.Publish(ctx, RequestCreatedEvent{RequestID: req.RequestID, RequestType: entities.RequestTypeTravel})
	return s.travelRepo.FindByRequestID(ctx, req.RequestID)
}

// buildExpenses превращает позиции запроса в строки вложений. Статус
// всегда PENDING независимо от того, что прислал клиент.
func (s *TravelRequestService) buildExpenses(items []dto.AttachmentPayload, category, requestID, origin string) []entities.ExpenseAttachment {
	result := make([]entities.ExpenseAttachment, 0, len(items))
	for _, item := range items {
		attachment := entities.ExpenseAttachment{
			ID:          uuid.NewString(),
			FileName:    item.FileName,
			Description: item.Description,
			FileSize:    item.FileSize,
			FileType:    item.FileType,
			FileURL:     item.FileURL,
			UploadDate:  parseSubmittedDate(item.UploadDate),
			Status:      entities.ItemStatusPending,
			Category:    category,
		}
		if attachment.FileURL == nil || *attachment.FileURL == "" {
			url := s.fileStorage.PublicURL(item.FileName, category, requestID, origin)
			attachment.FileURL = &url
		}
		result = append(result, attachment)
	}
	return result
}

func (s *TravelRequestService) commitStagedExpenses(req *entities.TravelRequest) {
	for _, item := range req.AllExpenses() {
		if _, err := s.fileStorage.Commit(item.FileName, item.Category, req.RequestID); err != nil {
			// Файл мог быть закоммичен раньше или не загружаться вовсе.
			s.logger.Warn("не удалось перенести staged-файл",
				zap.String("requestId", req.RequestID),
				zap.String("fileName", item.FileName),
				zap.Error(err))
		}
	}
}

func (s *TravelRequestService) List(ctx context.Context, filter types.Filter) ([]entities.TravelRequest, uint64, error) {
	return s.travelRepo.List(ctx, filter)
}

func (s *TravelRequestService) GetByRequestID(ctx context.Context, requestID string) (*entities.TravelRequest, error) {
	return s.travelRepo.FindByRequestID(ctx, requestID)
}

func (s *TravelRequestService) SetStatus(ctx context.Context, requestID string, payload dto.UpdateStatusDTO) (*entities.TravelRequest, error) {
	if !entities.IsValidRequestStatus(payload.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.travelRepo.FindForUpdateInTx(ctx, tx, requestID)
		if err != nil {
			return err
		}

		by, date, reason := statusSideFields(payload.Status, payload.ApprovedBy, payload.RejectionReason,
			req.ApprovedBy, req.ApprovedDate, req.RejectionReason)
		if err := s.travelRepo.SetStatusInTx(ctx, tx, req.ID, payload.Status, by, date, reason); err != nil {
			return err
		}

		if payload.Status == entities.StatusPartiallyRejected {
			if err := s.applyExpensePatches(ctx, tx, req, payload.Attachments); err != nil {
				return err
			}
		}

		if payload.Status == entities.StatusPendingApproval {
			s.enforceMixedConsistency(ctx, tx, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, RequestStatusChangedEvent{
		RequestID: requestID, RequestType: entities.RequestTypeTravel, Status: payload.Status,
	})
	return s.travelRepo.FindByRequestID(ctx, requestID)
}

// applyExpensePatches переносит решения по отдельным позициям при
// частичном отклонении. В legacy-режиме причина дописывается в описание
// позиции, в обычном - позиция получает статус и причину напрямую.
func (s *TravelRequestService) applyExpensePatches(ctx context.Context, tx pgx.Tx, req *entities.TravelRequest, patches []dto.LineItemStatusPatch) error {
	for _, patch := range patches {
		category, err := s.travelRepo.FindExpenseCategoryInTx(ctx, tx, req.ID, patch.ID)
		if err != nil {
			return err
		}

		reason := ""
		if patch.RejectionReason != nil {
			reason = *patch.RejectionReason
		}

		if s.cfg.AppendRejectionNote {
			if err := s.travelRepo.AppendExpenseRejectionNoteInTx(ctx, tx, category, patch.ID, rejectionNotePrefix+reason); err != nil {
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
		if err := s.travelRepo.UpdateExpenseStatusInTx(ctx, tx, category, patch.ID, status,
			itemRejectionReason(status, patch.RejectionReason)); err != nil {
			return err
		}
	}
	return nil
}

// enforceMixedConsistency: заявка, возвращенная в PENDING_APPROVAL при
// уже разнородных решениях по позициям, принудительно помечается как
// частично отклоненная. Сбой проверки логируется и не валит операцию.
func (s *TravelRequestService) enforceMixedConsistency(ctx context.Context, tx pgx.Tx, req *entities.TravelRequest) {
	var approved, rejected bool
	for _, item := range req.AllExpenses() {
		switch item.Status {
		case entities.ItemStatusApproved:
			approved = true
		case entities.ItemStatusRejected:
			rejected = true
		}
	}
	if !approved || !rejected {
		return
	}

	reason := mixedRejectionReason
	if err := s.travelRepo.SetStatusInTx(ctx, tx, req.ID, entities.StatusPartiallyRejected, nil, nil, &reason); err != nil {
		s.logger.Error("проверка согласованности позиций не выполнена",
			zap.String("requestId", req.RequestID), zap.Error(err))
	}
}

func (s *TravelRequestService) SetExpenseStatus(ctx context.Context, requestID, expenseID string, payload dto.UpdateLineItemStatusDTO) (*entities.TravelRequest, error) {
	if !entities.IsValidItemStatus(payload.Status) {
		return nil, apperrors.ErrInvalidStatus
	}
	category := entities.NormalizeCategory(payload.Category)

	var statusChangedTo string
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.travelRepo.FindForUpdateInTx(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if err := s.travelRepo.UpdateExpenseStatusInTx(ctx, tx, category, expenseID, payload.Status,
			itemRejectionReason(payload.Status, payload.RejectionReason)); err != nil {
			return err
		}

		// Агрегация только пока заявка не решена: повторные вызовы по
		// уже разрешенной заявке статус не трогают.
		if entities.IsResolvedRequestStatus(req.Status) {
			return nil
		}

		items := make([]lineItemState, 0)
		for _, item := range req.AllExpenses() {
			state := lineItemState{Status: item.Status, RejectionReason: item.RejectionReason}
			if item.ID == expenseID {
				state.Status = payload.Status
				state.RejectionReason = itemRejectionReason(payload.Status, payload.RejectionReason)
			}
			items = append(items, state)
		}

		outcome := aggregateLineItemStatuses(items)
		if !outcome.Changed {
			return nil
		}
		// Автопереход не штампует approvedBy/approvedDate.
		reason := req.RejectionReason
		if outcome.RejectionReason != nil {
			reason = outcome.RejectionReason
		}
		if err := s.travelRepo.SetStatusInTx(ctx, tx, req.ID, outcome.Status, req.ApprovedBy, req.ApprovedDate, reason); err != nil {
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
			RequestID: requestID, RequestType: entities.RequestTypeTravel, Status: statusChangedTo,
		})
	}
	return s.travelRepo.FindByRequestID(ctx, requestID)
}

func (s *TravelRequestService) UpdateFields(ctx context.Context, requestID string, payload dto.UpdateRequestDTO) (*entities.TravelRequest, error) {
	if payload.ManagerID.Valid {
		resolved := s.managerSvc.Resolve(ctx, payload.ManagerID.String)
		payload.ManagerID.String = resolved
	}
	if err := s.travelRepo.UpdateFields(ctx, requestID, payload); err != nil {
		return nil, err
	}
	return s.travelRepo.FindByRequestID(ctx, requestID)
}

func (s *TravelRequestService) Delete(ctx context.Context, requestID string) error {
	req, err := s.travelRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		return err
	}

	// Физические файлы убираются до записи, параллельно и best-effort:
	// отсутствие файла при массовой чистке не ошибка.
	var wg sync.WaitGroup
	for _, item := range req.AllExpenses() {
		wg.Add(1)
		go func(item entities.ExpenseAttachment) {
			defer wg.Done()
			if err := s.fileStorage.Delete(item.FileName, item.Category, requestID); err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
				s.logger.Warn("не удалось удалить файл вложения",
					zap.String("requestId", requestID),
					zap.String("fileName", item.FileName),
					zap.Error(err))
			}
		}(item)
	}
	wg.Wait()

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.travelRepo.DeleteInTx(ctx, tx, requestID)
	})
}
