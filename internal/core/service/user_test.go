package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"accounts/internal/adapter/database/sqlite/repository"
	"accounts/internal/core/domain"
	"accounts/internal/core/port"
	"accounts/internal/core/service"
	"accounts/internal/core/telemetry"
	"accounts/internal/core/util"
	"accounts/pkg/test"
)

type UserServiceTestSuite struct {
	suite.Suite
	repo port.UserRepository
	svc  port.UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	db := test.InitTestDB()
	s.repo = repository.NewUserRepository(db, telemetry.NewNoOpProbe())
	s.svc = service.NewUserService(s.repo, nil, bcrypt.MinCost)
}

func TestUserServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestService_CreateAndFindRoundTrip() {
	input := domain.CreateUser{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	}

	created, err := s.svc.Create(context.Background(), input)

	Expect(err).To(BeNil())
	Expect(created.ID).NotTo(Equal(uuid.Nil))
	Expect(created.FullName).To(Equal("Ada Lovelace"))
	Expect(created.Email).To(Equal("ada@example.com"))
	Expect(created.Password).NotTo(Equal("analytical-engine"))
	Expect(util.ComparePassword("analytical-engine", created.Password)).To(BeNil())
	Expect(created.UpdatedAt).To(Equal(created.CreatedAt))

	found, err := s.svc.GetByEmail(context.Background(), "ada@example.com")

	Expect(err).To(BeNil())
	Expect(found.ID).To(Equal(created.ID))
	Expect(found.FullName).To(Equal("Ada Lovelace"))
	Expect(found.Email).To(Equal("ada@example.com"))
	Expect(found.Password).To(Equal(created.Password))
}

func (s *UserServiceTestSuite) TestService_Create_EmailTaken() {
	input := domain.CreateUser{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	}

	_, err := s.svc.Create(context.Background(), input)
	Expect(err).To(BeNil())

	input.FullName = "Another Ada"
	_, err = s.svc.Create(context.Background(), input)

	Expect(errors.Is(err, domain.ErrEmailTaken)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestService_Create_NormalizesEmail() {
	input := domain.CreateUser{
		FullName: "Ada Lovelace",
		Email:    "  Ada@Example.COM ",
		Password: "analytical-engine",
	}

	created, err := s.svc.Create(context.Background(), input)

	Expect(err).To(BeNil())
	Expect(created.Email).To(Equal("ada@example.com"))

	found, err := s.svc.GetByEmail(context.Background(), "ADA@example.com")

	Expect(err).To(BeNil())
	Expect(found.ID).To(Equal(created.ID))
}

func (s *UserServiceTestSuite) TestService_Create_PasswordTooLong() {
	input := domain.CreateUser{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: strings.Repeat("a", 80),
	}

	_, err := s.svc.Create(context.Background(), input)

	Expect(err).To(HaveOccurred())

	var hashErr *domain.HashingError
	Expect(errors.As(err, &hashErr)).To(BeTrue())

	_, err = s.svc.GetByEmail(context.Background(), "ada@example.com")
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestService_Create_DistinctHashesPerUser() {
	first, err := s.svc.Create(context.Background(), domain.CreateUser{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "same-password",
	})
	Expect(err).To(BeNil())

	second, err := s.svc.Create(context.Background(), domain.CreateUser{
		FullName: "Charles Babbage",
		Email:    "charles@example.com",
		Password: "same-password",
	})
	Expect(err).To(BeNil())

	Expect(first.Password).NotTo(Equal(second.Password))
}

func (s *UserServiceTestSuite) TestService_GetByEmail_NotFound() {
	_, err := s.svc.GetByEmail(context.Background(), "missing@example.com")

	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestService_DeleteByEmail_EchoesEmail() {
	_, err := s.svc.Create(context.Background(), domain.CreateUser{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	Expect(err).To(BeNil())

	email, err := s.svc.DeleteByEmail(context.Background(), "ada@example.com")

	Expect(err).To(BeNil())
	Expect(email).To(Equal("ada@example.com"))

	_, err = s.svc.GetByEmail(context.Background(), "ada@example.com")
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestService_DeleteByEmail_Twice() {
	_, err := s.svc.Create(context.Background(), domain.CreateUser{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	Expect(err).To(BeNil())

	_, err = s.svc.DeleteByEmail(context.Background(), "ada@example.com")
	Expect(err).To(BeNil())

	_, err = s.svc.DeleteByEmail(context.Background(), "ada@example.com")
	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}

func (s *UserServiceTestSuite) TestService_DeleteByEmail_Missing() {
	_, err := s.svc.DeleteByEmail(context.Background(), "missing@example.com")

	Expect(errors.Is(err, domain.ErrNotFound)).To(BeTrue())
}
