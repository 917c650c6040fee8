package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"accounts/internal/core/domain"
	"accounts/internal/core/port"
	tel "accounts/internal/core/telemetry"
	"accounts/internal/core/util"
)

const serviceName = "user"

// UserService owns the account record lifecycle: hashing on write, equality
// lookup on read, transactional removal on delete. It holds no state beyond
// its collaborators; concurrency safety is delegated to the store.
type UserService struct {
	repo       port.UserRepository
	telemetry  port.Telemetry
	bcryptCost int
}

func NewUserService(repo port.UserRepository, telemetry port.Telemetry, bcryptCost int) *UserService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserService{
		repo:       repo,
		telemetry:  telemetry,
		bcryptCost: bcryptCost,
	}
}

// Create hashes the plaintext password, assigns a fresh id and timestamps,
// and persists the record with a single insert. The returned User carries
// the digest, never the input password.
func (s *UserService) Create(ctx context.Context, input domain.CreateUser) (domain.User, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, serviceName, "Create", []attribute.KeyValue{
		attribute.String("user.email", domain.NormalizeEmail(input.Email)),
	})
	defer span.End()

	start := time.Now()

	encrypted, err := util.GenerateEncrypt(input.Password, s.bcryptCost)

	if err != nil {
		hashErr := &domain.HashingError{Err: err}
		s.telemetry.RecordError(ctx, "user.create", hashErr, nil)
		return domain.User{}, hashErr
	}

	now := time.Now().UTC()

	newUser := domain.User{
		ID:        uuid.New(),
		FullName:  input.FullName,
		Email:     domain.NormalizeEmail(input.Email),
		Password:  encrypted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	user, err := s.repo.Create(ctx, newUser)
	s.telemetry.RecordServiceOperation(ctx, serviceName, "Create", time.Since(start), err)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// GetByEmail returns the unique record matching the normalized email, or
// domain.ErrNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, serviceName, "GetByEmail", nil)
	defer span.End()

	start := time.Now()

	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	s.telemetry.RecordServiceOperation(ctx, serviceName, "GetByEmail", time.Since(start), err)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// DeleteByEmail removes the matching record and echoes back its email. The
// lookup and the delete run in one repository transaction, so a concurrent
// removal surfaces as domain.ErrNotFound rather than a half-applied state.
func (s *UserService) DeleteByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := s.telemetry.StartServiceSpan(ctx, serviceName, "DeleteByEmail", nil)
	defer span.End()

	start := time.Now()

	user, err := s.repo.DeleteByEmail(ctx, domain.NormalizeEmail(email))
	s.telemetry.RecordServiceOperation(ctx, serviceName, "DeleteByEmail", time.Since(start), err)

	if err != nil {
		return "", err
	}

	return user.Email, nil
}
