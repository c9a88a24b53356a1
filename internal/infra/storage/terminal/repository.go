package terminal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	"github.com/m04kA/SMC-TerminalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TerminalService/pkg/psqlbuilder"
)

// terminalColumns список колонок таблицы terminals в порядке сканирования
var terminalColumns = []string{
	"id",
	"public_id",
	"owner_id",
	"latitude",
	"longitude",
	"status_terminal",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с терминалами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория терминалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый терминал
// Колонка occupied всегда выводится из статуса, отдельно не принимается
func (r *Repository) Create(ctx context.Context, t *domain.Terminal) (*domain.Terminal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !t.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	query, args, err := psqlbuilder.Insert("terminals").
		Columns(
			"public_id",
			"owner_id",
			"latitude",
			"longitude",
			"status_terminal",
			"occupied",
		).
		Values(
			t.PublicID,
			t.OwnerID,
			t.Latitude,
			t.Longitude,
			t.Status,
			t.Status.Occupied(),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает терминал по внутреннему ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Terminal, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByPublicID получает терминал по публичному идентификатору
func (r *Repository) GetByPublicID(ctx context.Context, publicID uuid.UUID) (*domain.Terminal, error) {
	return r.getOne(ctx, squirrel.Eq{"public_id": publicID})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Terminal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(terminalColumns...).
		From("terminals").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Terminal
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.PublicID,
		&t.OwnerID,
		&t.Latitude,
		&t.Longitude,
		&t.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTerminalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan terminal: %v", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// ListAll получает все терминалы в порядке возрастания ID
// Порядок выдачи поиска наследует порядок этого запроса
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Terminal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(terminalColumns...).
		From("terminals").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	terminals := make([]*domain.Terminal, 0)
	for rows.Next() {
		var t domain.Terminal
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.PublicID,
			&t.OwnerID,
			&t.Latitude,
			&t.Longitude,
			&t.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time
		terminals = append(terminals, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return terminals, nil
}

// SetOccupancy записывает статус терминала и производный флаг occupied
// одним UPDATE. Читатели никогда не увидят рассинхронизированную пару
// status_terminal/occupied.
func (r *Repository) SetOccupancy(ctx context.Context, id int64, status domain.TerminalStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !status.IsValid() {
		return ErrInvalidStatus
	}

	query, args, err := psqlbuilder.Update("terminals").
		Set("status_terminal", status).
		Set("occupied", status.Occupied()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetOccupancy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOccupancy - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOccupancy - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTerminalNotFound
	}

	return nil
}

// Delete удаляет терминал (физическое удаление, использовать осторожно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("terminals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTerminalNotFound
	}

	return nil
}
