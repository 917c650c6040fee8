package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"accounts/internal/adapter/database/sqlite/repository"
	"accounts/internal/adapter/http/handler"
	"accounts/internal/core/service"
	"accounts/internal/core/telemetry"
	"accounts/internal/shared"
	"accounts/pkg/api"
	"accounts/pkg/test"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db := test.InitTestDB()
	repo := repository.NewUserRepository(db, telemetry.NewNoOpProbe())
	svc := service.NewUserService(repo, nil, bcrypt.MinCost)
	userHandler := handler.NewUserHandler(svc, shared.NewNopAppLogger(), nil)

	s.router = api.SetupRouterForTests(api.HandlersConfig{UserHandler: userHandler})
}

func TestUserHandlerTestSuite(t *testing.T) {
	RegisterTestingT(t)

	suite.Run(t, new(UserHandlerTestSuite))
}

func (s *UserHandlerTestSuite) postUser(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func (s *UserHandlerTestSuite) TestHandler_CreateUser_Success() {
	w := s.postUser(`{"full_name":"Ada Lovelace","email":"ada@example.com","password":"analytical-engine"}`)

	Expect(w.Code).To(Equal(http.StatusCreated))

	var resp struct {
		Data map[string]any `json:"data"`
	}
	Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	Expect(resp.Data["full_name"]).To(Equal("Ada Lovelace"))
	Expect(resp.Data["email"]).To(Equal("ada@example.com"))
	Expect(resp.Data["id"]).NotTo(BeEmpty())
	Expect(resp.Data).NotTo(HaveKey("password"))
}

func (s *UserHandlerTestSuite) TestHandler_CreateUser_ValidationError() {
	w := s.postUser(`{"full_name":"","email":"not-an-email","password":"123"}`)

	Expect(w.Code).To(Equal(http.StatusBadRequest))
	Expect(w.Body.String()).To(ContainSubstring("VALIDATION_ERROR"))
}

func (s *UserHandlerTestSuite) TestHandler_CreateUser_MalformedBody() {
	w := s.postUser(`{"full_name":`)

	Expect(w.Code).To(Equal(http.StatusBadRequest))
	Expect(w.Body.String()).To(ContainSubstring("BAD_REQUEST"))
}

func (s *UserHandlerTestSuite) TestHandler_CreateUser_DuplicateEmail() {
	w := s.postUser(`{"full_name":"Ada Lovelace","email":"ada@example.com","password":"analytical-engine"}`)
	Expect(w.Code).To(Equal(http.StatusCreated))

	w = s.postUser(`{"full_name":"Another Ada","email":"ada@example.com","password":"different-pass"}`)

	Expect(w.Code).To(Equal(http.StatusConflict))
	Expect(w.Body.String()).To(ContainSubstring("CONFLICT"))
}

func (s *UserHandlerTestSuite) TestHandler_CreateUser_PasswordTooLong() {
	body := `{"full_name":"Ada Lovelace","email":"ada@example.com","password":"` + strings.Repeat("a", 80) + `"}`

	w := s.postUser(body)

	Expect(w.Code).To(Equal(http.StatusBadRequest))
	Expect(w.Body.String()).To(ContainSubstring("VALIDATION_ERROR"))
}

func (s *UserHandlerTestSuite) TestHandler_GetUserByEmail_Success() {
	w := s.postUser(`{"full_name":"Ada Lovelace","email":"ada@example.com","password":"analytical-engine"}`)
	Expect(w.Code).To(Equal(http.StatusCreated))

	req := httptest.NewRequest(http.MethodGet, "/users/ada@example.com", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))

	var resp struct {
		Data map[string]any `json:"data"`
	}
	Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	Expect(resp.Data["email"]).To(Equal("ada@example.com"))
	Expect(resp.Data).NotTo(HaveKey("password"))
}

func (s *UserHandlerTestSuite) TestHandler_GetUserByEmail_NotFound() {
	req := httptest.NewRequest(http.MethodGet, "/users/missing@example.com", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusNotFound))
	Expect(w.Body.String()).To(ContainSubstring("NOT_FOUND"))
}

func (s *UserHandlerTestSuite) TestHandler_DeleteUserByEmail_Success() {
	w := s.postUser(`{"full_name":"Ada Lovelace","email":"ada@example.com","password":"analytical-engine"}`)
	Expect(w.Code).To(Equal(http.StatusCreated))

	req := httptest.NewRequest(http.MethodDelete, "/users/ada@example.com", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))

	var resp struct {
		Data map[string]any `json:"data"`
	}
	Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	Expect(resp.Data["email"]).To(Equal("ada@example.com"))

	req = httptest.NewRequest(http.MethodGet, "/users/ada@example.com", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	Expect(w.Code).To(Equal(http.StatusNotFound))
}

func (s *UserHandlerTestSuite) TestHandler_DeleteUserByEmail_NotFound() {
	req := httptest.NewRequest(http.MethodDelete, "/users/missing@example.com", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusNotFound))
	Expect(w.Body.String()).To(ContainSubstring("NOT_FOUND"))
}

func (s *UserHandlerTestSuite) TestHandler_Health() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	Expect(w.Code).To(Equal(http.StatusOK))
}
