package services

import (
	"context"
	"fmt"
	"sync"

	"approval-system/internal/dto"
	"approval-system/internal/entities"
	"approval-system/internal/repositories"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/eventbus"
	"approval-system/pkg/filestorage"
	"approval-system/pkg/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VacationRequestServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateVacationRequestDTO, origin string) (*entities.VacationRequest, error)
	List(ctx context.Context, filter types.Filter) ([]entities.VacationRequest, uint64, error)
	GetByRequestID(ctx context.Context, requestID string) (*entities.VacationRequest, error)
	SetStatus(ctx context.Context, requestID string, payload dto.UpdateStatusDTO) (*entities.VacationRequest, error)
	SetAttachmentStatus(ctx context.Context, requestID, attachmentID string, payload dto.UpdateLineItemStatusDTO) (*entities.VacationRequest, error)
	UpdateFields(ctx context.Context, requestID string, payload dto.UpdateRequestDTO) (*entities.VacationRequest, error)
	AddComment(ctx context.Context, requestID, userID, message string) (*entities.VacationRequest, error)
	Delete(ctx context.Context, requestID string) error
}

type VacationRequestService struct {
	txManager        repositories.TxManagerInterface
	vacationRepo     repositories.VacationRequestRepositoryInterface
	availabilityRepo repositories.AvailabilityRepositoryInterface
	managerSvc       ManagerServiceInterface
	fileStorage      filestorage.FileStorageInterface
	bus              *eventbus.Bus
	logger           *zap.Logger
}

func NewVacationRequestService(
	txManager repositories.TxManagerInterface,
	vacationRepo repositories.VacationRequestRepositoryInterface,
	availabilityRepo repositories.AvailabilityRepositoryInterface,
	managerSvc ManagerServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) VacationRequestServiceInterface {
	return &VacationRequestService{
		txManager:        txManager,
		vacationRepo:     vacationRepo,
		availabilityRepo: availabilityRepo,
		managerSvc:       managerSvc,
		fileStorage:      fileStorage,
		bus:              bus,
		logger:           logger,
	}
}

func (s *VacationRequestService) Create(ctx context.Context, payload dto.CreateVacationRequestDTO, origin string) (*entities.VacationRequest, error) {
	status := payload.Status
	if status == "" {
		status = entities.StatusPendingApproval
	}
	if !entities.IsValidRequestStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	startDate, err := parseFlexibleDate(payload.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseFlexibleDate(payload.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, apperrors.NewInvalidInputError("дата окончания отпуска раньше даты начала")
	}

	managerID := s.managerSvc.Resolve(ctx, payload.ManagerID)
	if _, err := s.managerSvc.Ensure(ctx, managerID, ""); err != nil {
		return nil, err
	}

	req := &entities.VacationRequest{
		ID:            uuid.NewString(),
		RequestID:     payload.RequestID,
		Status:        status,
		SubmittedDate: parseSubmittedDate(payload.SubmittedDate),
		StartDate:     startDate,
		EndDate:       endDate,
		VacationType:  payload.VacationType,
		Reason:        payload.Reason,
		UserID:        payload.UserID,
		ManagerID:     managerID,
		SubstituteID:  payload.SubstituteID,
	}

	for _, item := range payload.Attachments {
		attachment := entities.FileAttachment{
			ID:          uuid.NewString(),
			FileName:    item.FileName,
			Description: item.Description,
			FileSize:    item.FileSize,
			FileType:    item.FileType,
			FileURL:     item.FileURL,
			UploadDate:  parseSubmittedDate(item.UploadDate),
			Status:      entities.ItemStatusPending,
		}
		if attachment.FileURL == nil || *attachment.FileURL == "" {
			url := s.fileStorage.PublicURL(item.FileName, "", payload.RequestID, origin)
			attachment.FileURL = &url
		}
		req.Attachments = append(req.Attachments, attachment)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := repositories.RegisterRequestIDInTx(ctx, tx, payload.RequestID, entities.RequestTypeVacation); err != nil {
			return err
		}
		return s.vacationRepo.CreateInTx(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}

	for _, item := range req.Attachments {
		if _, err := s.fileStorage.Commit(item.FileName, "", req.RequestID); err != nil {
			s.logger.Warn("не удалось перенести staged-файл",
				zap.String("requestId", req.RequestID),
				zap.String("fileName", item.FileName),
				zap.Error(err))
		}
	}

	s.bus.Publish(ctx, RequestCreatedEvent{RequestID: req.RequestID, RequestType: entities.RequestTypeVacation})
	return s.vacationRepo.FindByRequestID(ctx, req.RequestID)
}

func (s *VacationRequestService) List(ctx context.Context, filter types.Filter) ([]entities.VacationRequest, uint64, error) {
	return s.vacationRepo.List(ctx, filter)
}

func (s *VacationRequestService) GetByRequestID(ctx context.Context, requestID string) (*entities.VacationRequest, error) {
	return s.vacationRepo.FindByRequestID(ctx, requestID)
}

func (s *VacationRequestService) SetStatus(ctx context.Context, requestID string, payload dto.UpdateStatusDTO) (*entities.VacationRequest, error) {
	if !entities.IsValidRequestStatus(payload.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	var approvedReq *entities.VacationRequest
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.vacationRepo.FindForUpdateInTx(ctx, tx, requestID)
		if err != nil {
			return err
		}

		by, date, reason := statusSideFields(payload.Status, payload.ApprovedBy, payload.RejectionReason,
			req.ApprovedBy, req.ApprovedDate, req.RejectionReason)
		if err := s.vacationRepo.SetStatusInTx(ctx, tx, req.ID, payload.Status, by, date, reason); err != nil {
			return err
		}

		// Отпускные вложения всегда несут явную пару статус/причина.
		if payload.Status == entities.StatusPartiallyRejected {
			for _, patch := range payload.Attachments {
				status := patch.Status
				if status == "" {
					status = entities.ItemStatusRejected
				}
				if !entities.IsValidItemStatus(status) {
					return apperrors.ErrInvalidStatus
				}
				if err := s.vacationRepo.UpdateAttachmentStatusInTx(ctx, tx, patch.ID, status,
					itemRejectionReason(status, patch.RejectionReason)); err != nil {
					return err
				}
			}
		}

		if payload.Status == entities.StatusApproved {
			approvedReq = req
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if approvedReq != nil {
		if err := s.ensureAvailability(ctx, approvedReq); err != nil {
			return nil, err
		}
	}

	s.bus.Publish(ctx, RequestStatusChangedEvent{
		RequestID: requestID, RequestType: entities.RequestTypeVacation, Status: payload.Status,
	})
	return s.vacationRepo.FindByRequestID(ctx, requestID)
}

// ensureAvailability создает запись недоступности на период отпуска.
// Повторное одобрение той же заявки записей не плодит: точное совпадение
// периода уже существующей записи считается выполненной работой.
func (s *VacationRequestService) ensureAvailability(ctx context.Context, req *entities.VacationRequest) error {
	_, err := s.availabilityRepo.FindExactPeriod(ctx, req.UserID, req.StartDate, req.EndDate)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	return s.availabilityRepo.Create(ctx, &entities.Availability{
		ID:               uuid.NewString(),
		UserID:           req.UserID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		AvailabilityType: entities.AvailabilityTypeVacation,
		Reason:           fmt.Sprintf("Approved vacation %s", req.RequestID),
	})
}

func (s *VacationRequestService) SetAttachmentStatus(ctx context.Context, requestID, attachmentID string, payload dto.UpdateLineItemStatusDTO) (*entities.VacationRequest, error) {
	if !entities.IsValidItemStatus(payload.Status) {
		return nil, apperrors.ErrInvalidStatus
	}

	var statusChangedTo string
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.vacationRepo.FindForUpdateInTx(ctx, tx, requestID)
		if err != nil {
			return err
		}

		found := false
		for _, item := range req.Attachments {
			if item.ID == attachmentID {
				found = true
				break
			}
		}
		if !found {
			return apperrors.ErrNotFound
		}

		if err := s.vacationRepo.UpdateAttachmentStatusInTx(ctx, tx, attachmentID, payload.Status,
			itemRejectionReason(payload.Status, payload.RejectionReason)); err != nil {
			return err
		}

		if entities.IsResolvedRequestStatus(req.Status) {
			return nil
		}

		items := make([]lineItemState, 0, len(req.Attachments))
		for _, item := range req.Attachments {
			state := lineItemState{Status: item.Status, RejectionReason: item.RejectionReason}
			if item.ID == attachmentID {
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
		if err := s.vacationRepo.SetStatusInTx(ctx, tx, req.ID, outcome.Status, req.ApprovedBy, req.ApprovedDate, reason); err != nil {
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
			RequestID: requestID, RequestType: entities.RequestTypeVacation, Status: statusChangedTo,
		})
	}
	return s.vacationRepo.FindByRequestID(ctx, requestID)
}

func (s *VacationRequestService) UpdateFields(ctx context.Context, requestID string, payload dto.UpdateRequestDTO) (*entities.VacationRequest, error) {
	if payload.ManagerID.Valid {
		payload.ManagerID.String = s.managerSvc.Resolve(ctx, payload.ManagerID.String)
	}
	if err := s.vacationRepo.UpdateFields(ctx, requestID, payload); err != nil {
		return nil, err
	}
	return s.vacationRepo.FindByRequestID(ctx, requestID)
}

func (s *VacationRequestService) AddComment(ctx context.Context, requestID, userID, message string) (*entities.VacationRequest, error) {
	if message == "" {
		return nil, apperrors.NewInvalidInputError("текст комментария не может быть пустым")
	}
	req, err := s.vacationRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	comment := &entities.VacationComment{
		ID:        uuid.NewString(),
		RequestPK: req.ID,
		UserID:    userID,
		Message:   message,
	}
	if err := s.vacationRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.vacationRepo.FindByRequestID(ctx, requestID)
}

func (s *VacationRequestService) Delete(ctx context.Context, requestID string) error {
	req, err := s.vacationRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, item := range req.Attachments {
		wg.Add(1)
		go func(item entities.FileAttachment) {
			defer wg.Done()
			if err := s.fileStorage.Delete(item.FileName, "", requestID); err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
				s.logger.Warn("не удалось удалить файл вложения",
					zap.String("requestId", requestID),
					zap.String("fileName", item.FileName),
					zap.Error(err))
			}
		}(item)
	}
	wg.Wait()

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.vacationRepo.DeleteInTx(ctx, tx, requestID)
	})
}
