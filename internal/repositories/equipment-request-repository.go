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

type EquipmentRequestRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.EquipmentRequest) error
	FindByRequestID(ctx context.Context, requestID string) (*entities.EquipmentRequest, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*entities.EquipmentRequest, error)
	List(ctx context.Context, filter types.Filter) ([]entities.EquipmentRequest, uint64, error)
	UpdateFields(ctx context.Context, requestID string, patch dto.UpdateRequestDTO) error
	SetStatusInTx(ctx context.Context, tx pgx.Tx, requestPK, status string,
		approvedBy *string, approvedDate *time.Time, rejectionReason *string) error
	UpdateItemStatusInTx(ctx context.Context, tx pgx.Tx, itemID, status string, rejectionReason *string) error
	AppendItemRejectionNoteInTx(ctx context.Context, tx pgx.Tx, itemID, note string) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, requestID string) error
}

type EquipmentRequestRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRequestRepository(storage *pgxpool.Pool) EquipmentRequestRepositoryInterface {
	return &EquipmentRequestRepository{storage: storage}
}

const equipmentColumns = `e.id, e.request_id, e.status, e.submitted_date, e.updated_at,
	e.approved_date, e.approved_by, e.rejection_reason,
	e.user_id, e.total_cost, e.total_items, e.manager_id`

func scanEquipmentRequest(row pgx.Row) (*entities.EquipmentRequest, error) {
	var e entities.EquipmentRequest
	err := row.Scan(&e.ID, &e.RequestID, &e.Status, &e.SubmittedDate, &e.UpdatedAt,
		&e.ApprovedDate, &e.ApprovedBy, &e.RejectionReason,
		&e.UserID, &e.TotalCost, &e.TotalItems, &e.ManagerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования заявки на оборудование: %w", err)
	}
	return &e, nil
}

func (r *EquipmentRequestRepository) CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.EquipmentRequest) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO equipment_requests (id, request_id, status, submitted_date,
			user_id, total_cost, total_items, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING updated_at`,
		req.ID, req.RequestID, req.Status, req.SubmittedDate,
		req.UserID, req.TotalCost, req.TotalItems, req.ManagerID,
	).Scan(&req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания заявки на оборудование: %w", err)
	}

	for i := range req.EquipmentItems {
		item := &req.EquipmentItems[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO equipment_items (id, request_pk, type, name, cost, amount, reason, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.ID, req.ID, item.Type, item.Name, item.Cost, item.Amount, item.Reason, item.Status,
		)
		if err != nil {
			return fmt.Errorf("ошибка создания позиции оборудования: %w", err)
		}
	}
	return nil
}

func (r *EquipmentRequestRepository) FindByRequestID(ctx context.Context, requestID string) (*entities.EquipmentRequest, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT `+equipmentColumns+` FROM equipment_requests e WHERE e.request_id = $1`, requestID)
	req, err := scanEquipmentRequest(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, r.storage, req); err != nil {
		return nil, err
	}
	row = r.storage.QueryRow(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE manager_id = $1`, req.ManagerID)
	if manager, err := scanManager(row); err == nil {
		req.Manager = manager
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return req, nil
}

func (r *EquipmentRequestRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*entities.EquipmentRequest, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+equipmentColumns+` FROM equipment_requests e WHERE e.request_id = $1 FOR UPDATE`, requestID)
	req, err := scanEquipmentRequest(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, tx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *EquipmentRequestRepository) loadItems(ctx context.Context, q querier, req *entities.EquipmentRequest) error {
	rows, err := q.Query(ctx, `
		SELECT id, request_pk, type, name, cost, amount, reason, status, rejection_reason
		FROM equipment_items WHERE request_pk = $1 ORDER BY id`, req.ID)
	if err != nil {
		return fmt.Errorf("ошибка получения позиций оборудования: %w", err)
	}
	defer rows.Close()

	items := make([]entities.EquipmentItem, 0)
	for rows.Next() {
		var item entities.EquipmentItem
		if err := rows.Scan(&item.ID, &item.RequestPK, &item.Type, &item.Name,
			&item.Cost, &item.Amount, &item.Reason, &item.Status, &item.RejectionReason); err != nil {
			return fmt.Errorf("ошибка сканирования позиции оборудования: %w", err)
		}
		items = append(items, item)
	}
	req.EquipmentItems = items
	return rows.Err()
}

func (r *EquipmentRequestRepository) List(ctx context.Context, filter types.Filter) ([]entities.EquipmentRequest, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select().From("equipment_requests e")
	if filter.Status != "" {
		base = base.Where(sq.Eq{"e.status": filter.Status})
	}
	if filter.ManagerID != "" {
		base = base.Where(sq.Eq{"e.manager_id": filter.ManagerID})
	}
	if filter.UserID != "" {
		base = base.Where(sq.Eq{"e.user_id": filter.UserID})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заявок на оборудование: %w", err)
	}
	if total == 0 {
		return []entities.EquipmentRequest{}, 0, nil
	}

	query, args, err := base.Columns(equipmentColumns).
		OrderBy("e.submitted_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заявок на оборудование: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.EquipmentRequest, 0)
	for rows.Next() {
		var e entities.EquipmentRequest
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Status, &e.SubmittedDate, &e.UpdatedAt,
			&e.ApprovedDate, &e.ApprovedBy, &e.RejectionReason,
			&e.UserID, &e.TotalCost, &e.TotalItems, &e.ManagerID); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования заявки в списке: %w", err)
		}
		requests = append(requests, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range requests {
		if err := r.loadItems(ctx, r.storage, &requests[i]); err != nil {
			return nil, 0, err
		}
	}
	return requests, total, nil
}

func (r *EquipmentRequestRepository) UpdateFields(ctx context.Context, requestID string, patch dto.UpdateRequestDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	update := psql.Update("equipment_requests").Set("updated_at", sq.Expr("NOW()"))

	changed := false
	if patch.ManagerID.Valid {
		update = update.Set("manager_id", patch.ManagerID.String)
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
		return fmt.Errorf("ошибка обновления заявки на оборудование: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRequestRepository) SetStatusInTx(ctx context.Context, tx pgx.Tx, requestPK, status string,
	approvedBy *string, approvedDate *time.Time, rejectionReason *string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE equipment_requests
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

func (r *EquipmentRequestRepository) UpdateItemStatusInTx(ctx context.Context, tx pgx.Tx, itemID, status string, rejectionReason *string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE equipment_items
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1`,
		itemID, status, rejectionReason,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса позиции: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRequestRepository) AppendItemRejectionNoteInTx(ctx context.Context, tx pgx.Tx, itemID, note string) error {
	_, err := tx.Exec(ctx, `
		UPDATE equipment_items
		SET reason = reason || $2, updated_at = NOW()
		WHERE id = $1`,
		itemID, note,
	)
	if err != nil {
		return fmt.Errorf("ошибка дополнения причины позиции: %w", err)
	}
	return nil
}

func (r *EquipmentRequestRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, requestID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM equipment_requests WHERE request_id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("ошибка удаления заявки на оборудование: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return UnregisterRequestID(ctx, tx, requestID)
}
