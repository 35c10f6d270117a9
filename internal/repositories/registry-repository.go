package repositories

import (
	"context"
	"errors"
	"fmt"

	apperrors "approval-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation - код ошибки PostgreSQL о нарушении уникальности.
const uniqueViolation = "23505"

// RegisterRequestIDInTx бронирует requestId в общем реестре заявок.
// requestId участвует в путях файлового хранилища, поэтому пространство
// имён одно на все три типа заявок. Конфликт превращается в
// ErrDuplicateRequest (409).
func RegisterRequestIDInTx(ctx context.Context, tx pgx.Tx, requestID, requestType string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO request_registry (request_id, request_type) VALUES ($1, $2)`,
		requestID, requestType,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicateRequest
		}
		return fmt.Errorf("ошибка регистрации requestId: %w", err)
	}
	return nil
}

// UnregisterRequestID снимает бронь requestId (используется при удалении заявки).
func UnregisterRequestID(ctx context.Context, q querier, requestID string) error {
	_, err := q.Exec(ctx, `DELETE FROM request_registry WHERE request_id = $1`, requestID)
	if err != nil {
		return fmt.Errorf("ошибка удаления requestId из реестра: %w", err)
	}
	return nil
}
