package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/dbmetrics"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/psqlbuilder"
)

// insertBatchSize размер пакета при массовой вставке слотов
// Держит отдельные INSERT statements ограниченными по размеру
const insertBatchSize = 500

// Repository репозиторий для работы со слотами календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertBatch вставляет сгенерированные слоты пакетами по insertBatchSize строк
// Конфликты по (business_id, slot_start) молча пропускаются - повторная
// генерация с неизменным расписанием идемпотентна
//
// Ожидается вызов внутри транзакции регенерации (после DeleteFutureByBusiness),
// но работает и без неё
func (r *Repository) InsertBatch(ctx context.Context, slots []domain.Slot) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inserted := 0

	for offset := 0; offset < len(slots); offset += insertBatchSize {
		end := offset + insertBatchSize
		if end > len(slots) {
			end = len(slots)
		}

		insertBuilder := psqlbuilder.Insert("slots").
			Columns(
				"business_id",
				"slot_start",
				"slot_end",
				"is_available",
				"is_blocked",
			)

		for _, s := range slots[offset:end] {
			insertBuilder = insertBuilder.Values(
				s.BusinessID,
				s.StartUTC,
				s.EndUTC,
				s.IsAvailable,
				s.IsBlocked,
			)
		}

		query, args, err := insertBuilder.
			Suffix("ON CONFLICT (business_id, slot_start) DO NOTHING").
			ToSql()
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertBatch - build insert query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertBatch - execute insert: %v", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("%w: InsertBatch - get rows affected: %v", ErrExecQuery, err)
		}

		inserted += int(rowsAffected)
	}

	return inserted, nil
}

// DeleteFutureByBusiness удаляет все будущие слоты бизнеса (slot_start >= from)
// Вызывается в одной транзакции с InsertBatch при регенерации, чтобы
// не оставить смешанного старого/нового состояния
//
// Внимание: удаление затирает и ручные блокировки будущих слотов - это
// осознанное продуктовое решение, а не баг
func (r *Repository) DeleteFutureByBusiness(ctx context.Context, businessID int64, from time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"slot_start": from}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureByBusiness - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureByBusiness - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureByBusiness - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// DeleteExpired удаляет слоты всех бизнесов старше before одним ограниченным запросом
// Используется фазой очистки обслуживания горизонта
func (r *Repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Lt{"slot_start": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetBookableInWindow получает bookable-слоты бизнеса в окне [from, to)
// Отсортированы по возрастанию slot_start
func (r *Repository) GetBookableInWindow(ctx context.Context, businessID int64, from, to time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"slot_start",
		"slot_end",
		"is_available",
		"is_blocked",
	).
		From("slots").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.GtOrEq{"slot_start": from}).
		Where(squirrel.Lt{"slot_start": to}).
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Eq{"is_blocked": false}).
		OrderBy("slot_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookableInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookableInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(
			&s.ID,
			&s.BusinessID,
			&s.StartUTC,
			&s.EndUTC,
			&s.IsAvailable,
			&s.IsBlocked,
		); err != nil {
			return nil, fmt.Errorf("%w: GetBookableInWindow - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookableInWindow - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByBusinessAndStart получает слот по уникальной паре (business_id, slot_start)
func (r *Repository) GetByBusinessAndStart(ctx context.Context, businessID int64, start time.Time) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"slot_start",
		"slot_end",
		"is_available",
		"is_blocked",
	).
		From("slots").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"slot_start": start}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndStart - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.StartUTC,
		&s.EndUTC,
		&s.IsAvailable,
		&s.IsBlocked,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessAndStart - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetHorizonInfo возвращает сводку по будущим слотам бизнеса
// Используется обслуживанием горизонта для решения о регенерации
func (r *Repository) GetHorizonInfo(ctx context.Context, businessID int64, now time.Time) (*domain.HorizonInfo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"MAX(slot_start)",
	).
		From("slots").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Gt{"slot_start": now}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHorizonInfo - build select query: %v", ErrBuildQuery, err)
	}

	info := domain.HorizonInfo{BusinessID: businessID}
	var furthest sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&info.FutureSlotCount, &furthest)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHorizonInfo - scan row: %v", ErrScanRow, err)
	}

	if furthest.Valid {
		info.FurthestFutureSlot = &furthest.Time
	}

	return &info, nil
}

// SetBlocked устанавливает ручную блокировку слота (однострочная операция)
// Не затрагивается массовой генерацией до следующей регенерации расписания
func (r *Repository) SetBlocked(ctx context.Context, businessID int64, start time.Time, blocked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("is_blocked", blocked).
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"slot_start": start}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetBlocked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetBlocked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetBlocked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// RefreshStatistics обновляет статистику планировщика по таблице слотов
// Вызывается последней фазой обслуживания после массовых удалений и вставок
func (r *Repository) RefreshStatistics(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "ANALYZE slots"); err != nil {
		return fmt.Errorf("%w: RefreshStatistics - execute analyze: %v", ErrExecQuery, err)
	}

	return nil
}
