package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"accounts/internal/adapter/database/sqlite"
	"accounts/internal/core/domain"
	"accounts/internal/core/port"
	tel "accounts/internal/core/telemetry"
)

type UserRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

// Create inserts the record in a single statement. A violation of the
// unique email index maps to domain.ErrEmailTaken.
func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()

	query := ur.db.QueryBuilder.Insert("users").
		Columns("id", "full_name", "email", "password", "created_at", "updated_at").
		Values(user.ID.String(), user.FullName, user.Email, user.Password, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "users.create", Err: err}
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)
	ur.telemetry.RecordRepositoryOperation(ctx, "create", "user", time.Since(start), err)

	if err != nil {
		if isUniqueViolation(err) {
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

	err = ur.db.QueryRowContext(ctx, stmt, args...).Scan(
		&data.ID,
		&data.FullName,
		&data.Email,
		&data.Password,
		&data.CreatedAt,
		&data.UpdatedAt,
	)
	ur.telemetry.RecordRepositoryOperation(ctx, "get_by_email", "user", time.Since(start), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}

		slog.Error("Error getting user by email", "error", err)
		return domain.User{}, &domain.PersistenceError{Op: "users.get_by_email", Err: err}
	}

	return data, nil
}

// DeleteByEmail locates and removes the record inside one transaction, so
// the lookup cannot race the delete. Zero rows removed after a successful
// lookup also reports domain.ErrNotFound.
func (ur *UserRepository) DeleteByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()

	tx, err := ur.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("Error starting transaction", "error", err)
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}
	defer tx.Rollback()

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

	err = tx.QueryRowContext(ctx, selectStmt, selectArgs...).Scan(
		&data.ID,
		&data.FullName,
		&data.Email,
		&data.Password,
		&data.CreatedAt,
		&data.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	result, err := tx.ExecContext(ctx, deleteStmt, deleteArgs...)

	if err != nil {
		slog.Error("Error deleting user", "error", err)
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}

	if rowsAffected == 0 {
		return domain.User{}, domain.ErrNotFound
	}

	err = tx.Commit()
	ur.telemetry.RecordRepositoryOperation(ctx, "delete_by_email", "user", time.Since(start), err)

	if err != nil {
		return domain.User{}, &domain.PersistenceError{Op: "users.delete_by_email", Err: err}
	}

	return data, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
