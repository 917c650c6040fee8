package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	database "accounts/internal/adapter/database/postgres"
	"accounts/internal/core/domain"
	"accounts/internal/core/port"
	tel "accounts/internal/core/telemetry"
)

const uniqueViolationCode = "23505"

type UserRepository struct {
	db        *database.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *database.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()

	query := ur.db.QueryBuilder.Insert("users").
		Columns("id", "full_name", "email", "password", "created_at", "updated_at").
		Values(user.ID.String(), user.FullName, user.Email, user.Password, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "users.create", Err: err}
	}

	_, err = ur.db.Exec(ctx, stmt, args...)
	ur.telemetry.RecordRepositoryOperation(ctx, "create", "user", time.Since(start), err)

	if err != nil {
		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.User{}, &domain.PersistenceError{Op: "users.create", Err: domain.ErrEmailTaken}
		}

		slog.Error("Error creating user", "error", err)
		return domain.User{}, &domain.PersistenceError{Op: "users.create", Err: err}
	}

	return user, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()

	query := ur.db.QueryBuilder.Select("id", "full_name", "email", "password", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "users.get_by_email", Err: err}
	}

	var data domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(
		&data.ID,
		&data.FullName,
		&data.Email,
		&data.Password,
		&data.CreatedAt,
		&data.UpdatedAt,
	)
	ur.telemetry.RecordRepositoryOperation(ctx, "get_by_email", "user", time.Since(start), err)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}

		slog.Error("Error getting user by email", "error", err)
		return domain.User{}, &domain.PersistenceError{Op: "users.get_by_email", Err: err}
	}

	return data, nil
}

// DeleteByEmail runs the lookup and the delete in one transaction at the
// pool's default isolation (read committed), which is enough to keep the
// two statements consistent with each other.
func (ur *UserRepository) DeleteByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()

	tx, err := ur.db.Begin(ctx)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}
	defer tx.Rollback(ctx)

	selectStmt, selectArgs, err := ur.db.QueryBuilder.
		Select("id", "full_name", "email", "password", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}

	var data domain.User

	err = tx.QueryRow(ctx, selectStmt, selectArgs...).Scan(
		&data.ID,
		&data.FullName,
		&data.Email,
		&data.Password,
		&data.CreatedAt,
		&data.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}

		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}

	deleteStmt, deleteArgs, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"email": email}).
		ToSql()

	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}

	tag, err := tx.Exec(ctx, deleteStmt, deleteArgs...)

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}

	if tag.RowsAffected() == 0 {
		return domain.User{}, domain.ErrNotFound
	}

	err = tx.Commit(ctx)
	ur.telemetry.RecordRepositoryOperation(ctx, "delete_by_email", "user", time.Since(start), err)

	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}

	return data, nil
}
