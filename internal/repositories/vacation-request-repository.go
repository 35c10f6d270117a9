package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"approval-system/internal/dto"
	"approval-system/internal/entities"
	apperrors "approval-system/pkg/errors"
	"approval-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VacationRequestRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.VacationRequest) error
	FindByRequestID(ctx context.Context, requestID string) (*entities.VacationRequest, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*entities.VacationRequest, error)
	List(ctx context.Context, filter types.Filter) ([]entities.VacationRequest, uint64, error)
	UpdateFields(ctx context.Context, requestID string, patch dto.UpdateRequestDTO) error
	SetStatusInTx(ctx context.Context, tx pgx.Tx, requestPK, status string,
		approvedBy *string, approvedDate *time.Time, rejectionReason *string) error
	UpdateAttachmentStatusInTx(ctx context.Context, tx pgx.Tx, attachmentID, status string, rejectionReason *string) error
	AddComment(ctx context.Context, comment *entities.VacationComment) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, requestID string) error
}

type VacationRequestRepository struct {
	storage *pgxpool.Pool
}

func NewVacationRequestRepository(storage *pgxpool.Pool) VacationRequestRepositoryInterface {
	return &VacationRequestRepository{storage: storage}
}

const vacationColumns = `v.id, v.request_id, v.status, v.submitted_date, v.updated_at,
	v.approved_date, v.approved_by, v.rejection_reason,
	v.start_date, v.end_date, v.vacation_type, v.reason,
	v.user_id, v.manager_id, v.substitute_id`

func scanVacationRequest(row pgx.Row) (*entities.VacationRequest, error) {
	var v entities.VacationRequest
	err := row.Scan(&v.ID, &v.RequestID, &v.Status, &v.SubmittedDate, &v.UpdatedAt,
		&v.ApprovedDate, &v.ApprovedBy, &v.RejectionReason,
		&v.StartDate, &v.EndDate, &v.VacationType, &v.Reason,
		&v.UserID, &v.ManagerID, &v.SubstituteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования отпускной заявки: %w", err)
	}
	return &v, nil
}

func (r *VacationRequestRepository) CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.VacationRequest) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO vacation_requests (id, request_id, status, submitted_date,
			start_date, end_date, vacation_type, reason,
			user_id, manager_id, substitute_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING updated_at`,
		req.ID, req.RequestID, req.Status, req.SubmittedDate,
		req.StartDate, req.EndDate, req.VacationType, req.Reason,
		req.UserID, req.ManagerID, req.SubstituteID,
	).Scan(&req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания отпускной заявки: %w", err)
	}

	for i := range req.Attachments {
		item := &req.Attachments[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO vacation_attachments (id, request_pk, file_name, description,
				file_size, file_type, file_url, upload_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING updated_at`,
			item.ID, req.ID, item.FileName, item.Description,
			item.FileSize, item.FileType, item.FileURL, item.UploadDate, item.Status,
		).Scan(&item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("ошибка создания вложения отпускной заявки: %w", err)
		}
	}
	return nil
}

func (r *VacationRequestRepository) FindByRequestID(ctx context.Context, requestID string) (*entities.VacationRequest, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT `+vacationColumns+` FROM vacation_requests v WHERE v.request_id = $1`, requestID)
	req, err := scanVacationRequest(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, r.storage, req, true); err != nil {
		return nil, err
	}
	if manager, err := r.findManager(ctx, req.ManagerID); err == nil {
		req.Manager = manager
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return req, nil
}

func (r *VacationRequestRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*entities.VacationRequest, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+vacationColumns+` FROM vacation_requests v WHERE v.request_id = $1 FOR UPDATE`, requestID)
	req, err := scanVacationRequest(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, tx, req, false); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *VacationRequestRepository) findManager(ctx context.Context, managerID string) (*entities.Manager, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE manager_id = $1`, managerID)
	return scanManager(row)
}

func (r *VacationRequestRepository) loadChildren(ctx context.Context, q querier, req *entities.VacationRequest, withComments bool) error {
	rows, err := q.Query(ctx, `
		SELECT id, request_pk, file_name, description, file_size, file_type,
			file_url, upload_date, status, rejection_reason, updated_at
		FROM vacation_attachments WHERE request_pk = $1 ORDER BY upload_date, id`, req.ID)
	if err != nil {
		return fmt.Errorf("ошибка получения вложений отпускной заявки: %w", err)
	}
	attachments := make([]entities.FileAttachment, 0)
	for rows.Next() {
		var a entities.FileAttachment
		if err := rows.Scan(&a.ID, &a.RequestPK, &a.FileName, &a.Description,
			&a.FileSize, &a.FileType, &a.FileURL, &a.UploadDate,
			&a.Status, &a.RejectionReason, &a.UpdatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("ошибка сканирования вложения отпускной заявки: %w", err)
		}
		attachments = append(attachments, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	req.Attachments = attachments

	if !withComments {
		return nil
	}
	commentRows, err := q.Query(ctx, `
		SELECT id, request_pk, user_id, message, created_at
		FROM vacation_comments WHERE request_pk = $1 ORDER BY created_at, id`, req.ID)
	if err != nil {
		return fmt.Errorf("ошибка получения комментариев: %w", err)
	}
	defer commentRows.Close()
	comments := make([]entities.VacationComment, 0)
	for commentRows.Next() {
		var c entities.VacationComment
		if err := commentRows.Scan(&c.ID, &c.RequestPK, &c.UserID, &c.Message, &c.CreatedAt); err != nil {
			return fmt.Errorf("ошибка сканирования комментария: %w", err)
		}
		comments = append(comments, c)
	}
	req.Comments = comments
	return commentRows.Err()
}

func (r *VacationRequestRepository) List(ctx context.Context, filter types.Filter) ([]entities.VacationRequest, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select().From("vacation_requests v")
	if filter.Status != "" {
		base = base.Where(sq.Eq{"v.status": filter.Status})
	}
	if filter.ManagerID != "" {
		base = base.Where(sq.Eq{"v.manager_id": filter.ManagerID})
	}
	if filter.UserID != "" {
		base = base.Where(sq.Eq{"v.user_id": filter.UserID})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета отпускных заявок: %w", err)
	}
	if total == 0 {
		return []entities.VacationRequest{}, 0, nil
	}

	query, args, err := base.Columns(vacationColumns).
		OrderBy("v.submitted_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка отпускных заявок: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.VacationRequest, 0)
	for rows.Next() {
		var v entities.VacationRequest
		if err := rows.Scan(&v.ID, &v.RequestID, &v.Status, &v.SubmittedDate, &v.UpdatedAt,
			&v.ApprovedDate, &v.ApprovedBy, &v.RejectionReason,
			&v.StartDate, &v.EndDate, &v.VacationType, &v.Reason,
			&v.UserID, &v.ManagerID, &v.SubstituteID); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования заявки в списке: %w", err)
		}
		requests = append(requests, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range requests {
		if err := r.loadChildren(ctx, r.storage, &requests[i], true); err != nil {
			return nil, 0, err
		}
	}
	return requests, total, nil
}

func (r *VacationRequestRepository) UpdateFields(ctx context.Context, requestID string, patch dto.UpdateRequestDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	update := psql.Update("vacation_requests").Set("updated_at", sq.Expr("NOW()"))

	changed := false
	if patch.ManagerID.Valid {
		update = update.Set("manager_id", patch.ManagerID.String)
		changed = true
	}
	if patch.Reason.Valid {
		update = update.Set("reason", patch.Reason.String)
		changed = true
	}
	if patch.StartDate.Valid {
		update = update.Set("start_date", patch.StartDate.String)
		changed = true
	}
	if patch.EndDate.Valid {
		update = update.Set("end_date", patch.EndDate.String)
		changed = true
	}
	if patch.VacationType.Valid {
		update = update.Set("vacation_type", patch.VacationType.String)
		changed = true
	}
	if !changed {
		return nil
	}

	query, args, err := update.Where(sq.Eq{"request_id": requestID}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления: %w", err)
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления отпускной заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *VacationRequestRepository) SetStatusInTx(ctx context.Context, tx pgx.Tx, requestPK, status string,
	approvedBy *string, approvedDate *time.Time, rejectionReason *string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE vacation_requests
		SET status = $2, approved_by = $3, approved_date = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1`,
		requestPK, status, approvedBy, approvedDate, rejectionReason,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *VacationRequestRepository) UpdateAttachmentStatusInTx(ctx context.Context, tx pgx.Tx, attachmentID, status string, rejectionReason *string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE vacation_attachments
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1`,
		attachmentID, status, rejectionReason,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса вложения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *VacationRequestRepository) AddComment(ctx context.Context, comment *entities.VacationComment) error {
	err := r.storage.QueryRow(ctx, `
		INSERT INTO vacation_comments (id, request_pk, user_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		comment.ID, comment.RequestPK, comment.UserID, comment.Message,
	).Scan(&comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания комментария: %w", err)
	}
	return nil
}

func (r *VacationRequestRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, requestID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM vacation_requests WHERE request_id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("ошибка удаления отпускной заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return UnregisterRequestID(ctx, tx, requestID)
}
