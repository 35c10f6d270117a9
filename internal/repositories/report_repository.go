package repositories

import (
	"context"
	"fmt"
	"sort"

	"approval-system/internal/entities"
	"approval-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepositoryInterface interface {
	GetReport(ctx context.Context, filter types.ReportFilter) ([]entities.ReportRow, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

// reportSource описывает, как тип заявки проецируется в строку отчета.
type reportSource struct {
	requestType string
	table       string
	userIDCol   string
	summaryExpr string
}

var reportSources = []reportSource{
	{
		requestType: entities.RequestTypeTravel,
		table:       "travel_requests",
		userIDCol:   "user_id",
		summaryExpr: `'Командировка: ' || destination`,
	},
	{
		requestType: entities.RequestTypeVacation,
		table:       "vacation_requests",
		userIDCol:   "user_id",
		summaryExpr: `'Отпуск (' || vacation_type || ')'`,
	},
	{
		requestType: entities.RequestTypeEquipment,
		table:       "equipment_requests",
		userIDCol:   "user_id",
		summaryExpr: `'Оборудование: ' || total_items || ' поз., ' || total_cost`,
	},
}

func (r *reportRepository) GetReport(ctx context.Context, filter types.ReportFilter) ([]entities.ReportRow, error) {
	wanted := func(requestType string) bool {
		if len(filter.Types) == 0 {
			return true
		}
		for _, t := range filter.Types {
			if t == requestType {
				return true
			}
		}
		return false
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	rowsOut := make([]entities.ReportRow, 0)

	for _, src := range reportSources {
		if !wanted(src.requestType) {
			continue
		}

		builder := psql.Select(
			"request_id",
			fmt.Sprintf("'%s'", src.requestType),
			"status",
			"submitted_date",
			src.userIDCol,
			"manager_id",
			src.summaryExpr,
			"approved_by",
			"approved_date",
			"rejection_reason",
		).From(src.table)

		if len(filter.Statuses) > 0 {
			builder = builder.Where(sq.Eq{"status": filter.Statuses})
		}
		if filter.DateFrom != nil {
			builder = builder.Where(sq.GtOrEq{"submitted_date": filter.DateFrom})
		}
		if filter.DateTo != nil {
			builder = builder.Where(sq.LtOrEq{"submitted_date": filter.DateTo})
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("ошибка сборки запроса отчета (%s): %w", src.table, err)
		}

		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("ошибка выполнения запроса отчета (%s): %w", src.table, err)
		}
		for rows.Next() {
			var row entities.ReportRow
			if err := rows.Scan(&row.RequestID, &row.RequestType, &row.Status,
				&row.SubmittedDate, &row.UserID, &row.ManagerID, &row.Summary,
				&row.ApprovedBy, &row.ApprovedDate, &row.RejectionReason); err != nil {
				rows.Close()
				return nil, fmt.Errorf("ошибка сканирования строки отчета (%s): %w", src.table, err)
			}
			rowsOut = append(rowsOut, row)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	sort.Slice(rowsOut, func(i, j int) bool {
		return rowsOut[i].SubmittedDate.After(rowsOut[j].SubmittedDate)
	})
	return rowsOut, nil
}
