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

// expenseTables сопоставляет категорию вложения с её таблицей.
// Ключи фиксированы словарём категорий, подстановка имени таблицы
// в SQL безопасна.
var expenseTables = map[string]string{
	entities.CategoryFoodCosts:   "food_costs",
	entities.CategoryTravelCosts: "travel_costs",
	entities.CategoryStayCosts:   "stay_costs",
}

type TravelRequestRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.TravelRequest) error
	FindByRequestID(ctx context.Context, requestID string) (*entities.TravelRequest, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*entities.TravelRequest, error)
	List(ctx context.Context, filter types.Filter) ([]entities.TravelRequest, uint64, error)
	UpdateFields(ctx context.Context, requestID string, patch dto.UpdateRequestDTO) error
	SetStatusInTx(ctx context.Context, tx pgx.Tx, requestPK, status string,
		approvedBy *string, approvedDate *time.Time, rejectionReason *string) error
	FindExpenseCategoryInTx(ctx context.Context, tx pgx.Tx, requestPK, expenseID string) (string, error)
	UpdateExpenseStatusInTx(ctx context.Context, tx pgx.Tx, category, expenseID, status string, rejectionReason *string) error
	AppendExpenseRejectionNoteInTx(ctx context.Context, tx pgx.Tx, category, expenseID, note string) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, requestID string) error
}

type TravelRequestRepository struct {
	storage *pgxpool.Pool
}

func NewTravelRequestRepository(storage *pgxpool.Pool) TravelRequestRepositoryInterface {
	return &TravelRequestRepository{storage: storage}
}

const travelColumns = `t.id, t.request_id, t.status, t.submitted_date, t.updated_at,
	t.approved_date, t.approved_by, t.rejection_reason,
	t.user_id, t.submitted_by, t.submitted_by_email,
	t.destination, t.start_date, t.end_date, t.reason, t.duration, t.manager_id`

func scanTravelRequest(row pgx.Row) (*entities.TravelRequest, error) {
	var t entities.TravelRequest
	err := row.Scan(&t.ID, &t.RequestID, &t.Status, &t.SubmittedDate, &t.UpdatedAt,
		&t.ApprovedDate, &t.ApprovedBy, &t.RejectionReason,
		&t.UserID, &t.SubmittedBy, &t.SubmittedByEmail,
		&t.Destination, &t.StartDate, &t.EndDate, &t.Reason, &t.Duration, &t.ManagerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования командировочной заявки: %w", err)
	}
	return &t, nil
}

func (r *TravelRequestRepository) CreateInTx(ctx context.Context, tx pgx.Tx, req *entities.TravelRequest) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO travel_requests (id, request_id, status, submitted_date,
			user_id, submitted_by, submitted_by_email,
			destination, start_date, end_date, reason, duration, manager_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING updated_at`,
		req.ID, req.RequestID, req.Status, req.SubmittedDate,
		req.UserID, req.SubmittedBy, req.SubmittedByEmail,
		req.Destination, req.StartDate, req.EndDate, req.Reason, req.Duration, req.ManagerID,
	).Scan(&req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания командировочной заявки: %w", err)
	}

	insert := func(table string, items []entities.ExpenseAttachment) error {
		for i := range items {
			item := &items[i]
			err := tx.QueryRow(ctx, `
				INSERT INTO `+table+` (id, request_pk, file_name, description,
					file_size, file_type, file_url, upload_date, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING updated_at`,
				item.ID, req.ID, item.FileName, item.Description,
				item.FileSize, item.FileType, item.FileURL, item.UploadDate, item.Status,
			).Scan(&item.UpdatedAt)
			if err != nil {
				return fmt.Errorf("ошибка создания вложения (%s): %w", table, err)
			}
		}
		return nil
	}
	if err := insert("food_costs", req.FoodCosts); err != nil {
		return err
	}
	if err := insert("travel_costs", req.TravelCosts); err != nil {
		return err
	}
	return insert("stay_costs", req.StayCosts)
}

func (r *TravelRequestRepository) FindByRequestID(ctx context.Context, requestID string) (*entities.TravelRequest, error) {
	row := r.storage.QueryRow(ctx,
		`SELECT `+travelColumns+` FROM travel_requests t WHERE t.request_id = $1`, requestID)
	req, err := scanTravelRequest(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadExpenses(ctx, r.storage, req); err != nil {
		return nil, err
	}
	if err := r.attachManager(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// FindForUpdateInTx читает заявку с блокировкой строки. Агрегация
// статусов по позициям обязана видеть согласованное состояние, поэтому
// конкурирующие решения по одной заявке сериализуются на этой блокировке.
func (r *TravelRequestRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, requestID string) (*entities.TravelRequest, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+travelColumns+` FROM travel_requests t WHERE t.request_id = $1 FOR UPDATE`, requestID)
	req, err := scanTravelRequest(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadExpenses(ctx, tx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *TravelRequestRepository) loadExpenses(ctx context.Context, q querier, req *entities.TravelRequest) error {
	for category, table := range expenseTables {
		rows, err := q.Query(ctx, `
			SELECT id, request_pk, file_name, description, file_size, file_type,
				file_url, upload_date, status, rejection_reason, updated_at
			FROM `+table+` WHERE request_pk = $1 ORDER BY upload_date, id`, req.ID)
		if err != nil {
			return fmt.Errorf("ошибка получения вложений (%s): %w", table, err)
		}
		items := make([]entities.ExpenseAttachment, 0)
		for rows.Next() {
			var a entities.ExpenseAttachment
			if err := rows.Scan(&a.ID, &a.RequestPK, &a.FileName, &a.Description,
				&a.FileSize, &a.FileType, &a.FileURL, &a.UploadDate,
				&a.Status, &a.RejectionReason, &a.UpdatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("ошибка сканирования вложения (%s): %w", table, err)
			}
			a.Category = category
			items = append(items, a)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("ошибка чтения вложений (%s): %w", table, err)
		}
		switch category {
		case entities.CategoryFoodCosts:
			req.FoodCosts = items
		case entities.CategoryTravelCosts:
			req.TravelCosts = items
		case entities.CategoryStayCosts:
			req.StayCosts = items
		}
	}
	return nil
}

func (r *TravelRequestRepository) attachManager(ctx context.Context, req *entities.TravelRequest) error {
	row := r.storage.QueryRow(ctx,
		`SELECT `+managerColumns+` FROM managers WHERE manager_id = $1`, req.ManagerID)
	manager, err := scanManager(row)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	req.Manager = manager
	return nil
}

func (r *TravelRequestRepository) List(ctx context.Context, filter types.Filter) ([]entities.TravelRequest, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select().From("travel_requests t")
	if filter.Status != "" {
		base = base.Where(sq.Eq{"t.status": filter.Status})
	}
	if filter.ManagerID != "" {
		base = base.Where(sq.Eq{"t.manager_id": filter.ManagerID})
	}
	if filter.UserID != "" {
		base = base.Where(sq.Eq{"t.user_id": filter.UserID})
	}

	countQuery, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета командировочных заявок: %w", err)
	}
	if total == 0 {
		return []entities.TravelRequest{}, 0, nil
	}

	query, args, err := base.Columns(travelColumns).
		OrderBy("t.submitted_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка командировочных заявок: %w", err)
	}
	defer rows.Close()

	requests := make([]entities.TravelRequest, 0)
	for rows.Next() {
		var t entities.TravelRequest
		if err := rows.Scan(&t.ID, &t.RequestID, &t.Status, &t.SubmittedDate, &t.UpdatedAt,
			&t.ApprovedDate, &t.ApprovedBy, &t.RejectionReason,
			&t.UserID, &t.SubmittedBy, &t.SubmittedByEmail,
			&t.Destination, &t.StartDate, &t.EndDate, &t.Reason, &t.Duration, &t.ManagerID); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования заявки в списке: %w", err)
		}
		requests = append(requests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range requests {
		if err := r.loadExpenses(ctx, r.storage, &requests[i]); err != nil {
			return nil, 0, err
		}
	}
	return requests, total, nil
}

func (r *TravelRequestRepository) UpdateFields(ctx context.Context, requestID string, patch dto.UpdateRequestDTO) error {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	update := psql.Update("travel_requests").Set("updated_at", sq.Expr("NOW()"))

	changed := false
	if patch.ManagerID.Valid {
		update = update.Set("manager_id", patch.ManagerID.String)
		changed = true
	}
	if patch.Reason.Valid {
		update = update.Set("reason", patch.Reason.String)
		changed = true
	}
	if patch.Destination.Valid {
		update = update.Set("destination", patch.Destination.String)
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
	if !changed {
		return nil
	}

	query, args, err := update.Where(sq.Eq{"request_id": requestID}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки запроса обновления: %w", err)
	}
	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления командировочной заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TravelRequestRepository) SetStatusInTx(ctx context.Context, tx pgx.Tx, requestPK, status string,
	approvedBy *string, approvedDate *time.Time, rejectionReason *string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE travel_requests
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

// FindExpenseCategoryInTx определяет, в какой из трех коллекций лежит
// позиция. Клиент не всегда присылает категорию вместе с ID.
func (r *TravelRequestRepository) FindExpenseCategoryInTx(ctx context.Context, tx pgx.Tx, requestPK, expenseID string) (string, error) {
	for category, table := range expenseTables {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1 AND request_pk = $2)`,
			expenseID, requestPK,
		).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("ошибка поиска вложения (%s): %w", table, err)
		}
		if exists {
			return category, nil
		}
	}
	return "", apperrors.ErrNotFound
}

func (r *TravelRequestRepository) UpdateExpenseStatusInTx(ctx context.Context, tx pgx.Tx, category, expenseID, status string, rejectionReason *string) error {
	table, ok := expenseTables[category]
	if !ok {
		return apperrors.ErrBadRequest
	}
	tag, err := tx.Exec(ctx, `
		UPDATE `+table+`
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1`,
		expenseID, status, rejectionReason,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса вложения (%s): %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TravelRequestRepository) AppendExpenseRejectionNoteInTx(ctx context.Context, tx pgx.Tx, category, expenseID, note string) error {
	table, ok := expenseTables[category]
	if !ok {
		return apperrors.ErrBadRequest
	}
	_, err := tx.Exec(ctx, `
		UPDATE `+table+`
		SET description = description || $2, updated_at = NOW()
		WHERE id = $1`,
		expenseID, note,
	)
	if err != nil {
		return fmt.Errorf("ошибка дополнения описания вложения (%s): %w", table, err)
	}
	return nil
}

func (r *TravelRequestRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, requestID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM travel_requests WHERE request_id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("ошибка удаления командировочной заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return UnregisterRequestID(ctx, tx, requestID)
}
