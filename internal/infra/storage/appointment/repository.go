package appointment

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

// Repository репозиторий для работы с записями клиентов
// Движок читает только времена и статус - остальные поля записи
// принадлежат внешней части приложения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOverlapping находит записи бизнеса, пересекающие окно [windowStart, windowEnd)
// с одним из переданных статусов. Пересечение полуинтервалов:
// start_time < windowEnd AND end_time > windowStart
//
// Внутри транзакции добавляет FOR UPDATE - коммитер бронирования использует это
// для повторной проверки конфликтов под блокировкой
func (r *Repository) FindOverlapping(
	ctx context.Context,
	businessID int64,
	windowStart, windowEnd time.Time,
	statuses []domain.AppointmentStatus,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"business_id",
		"service_name",
		"start_time",
		"end_time",
		"duration_minutes",
		"status",
		"customer_name",
		"customer_phone",
		"customer_email",
		"notes",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Lt{"start_time": windowEnd}).
		Where(squirrel.Gt{"end_time": windowStart}).
		Where(squirrel.Eq{"status": statusStrings}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Insert создает новую запись
// Вызывается коммитером внутри сериализуемой транзакции после повторной
// проверки конфликтов
func (r *Repository) Insert(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"business_id",
			"service_name",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"customer_name",
			"customer_phone",
			"customer_email",
			"notes",
		).
		Values(
			appt.BusinessID,
			appt.ServiceName,
			appt.StartUTC,
			appt.EndUTC,
			appt.DurationMinutes,
			appt.Status,
			appt.CustomerName,
			appt.CustomerPhone,
			appt.CustomerEmail,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"service_name",
		"start_time",
		"end_time",
		"duration_minutes",
		"status",
		"customer_name",
		"customer_phone",
		"customer_email",
		"notes",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appts, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appts) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appts[0], nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appts := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.BusinessID,
			&appt.ServiceName,
			&appt.StartUTC,
			&appt.EndUTC,
			&appt.DurationMinutes,
			&appt.Status,
			&appt.CustomerName,
			&appt.CustomerPhone,
			&appt.CustomerEmail,
			&appt.Notes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appts = append(appts, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appts, nil
}
