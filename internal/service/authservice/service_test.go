package authservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/logger"
	"edupost/internal/service/authservice"
)

// MockUserRepository é uma implementação mock da interface domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, page domain.Pagination) ([]domain.User, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func newService(repo *MockUserRepository) *authservice.Service {
	return authservice.NewService(repo, logger.NewLogger("fatal"))
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	stored := domain.User{
		ID:       uuid.NewString(),
		Name:     "Profa. Ana",
		Email:    "ana@escola.edu.br",
		Password: "secret",
		Role:     domain.RoleDocente,
	}
	mockRepo.On("FindByEmail", mock.Anything, stored.Email).Return(stored, nil)

	user, err := svc.Login(context.Background(), domain.LoginInput{
		Email:    stored.Email,
		Password: "secret",
	})

	assert.NoError(t, err)
	assert.Equal(t, stored, user)
}

func TestLogin_Fail_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	stored := domain.User{
		ID:       uuid.NewString(),
		Email:    "ana@escola.edu.br",
		Password: "secret",
		Role:     domain.RoleDocente,
	}
	mockRepo.On("FindByEmail", mock.Anything, stored.Email).Return(stored, nil)

	_, err := svc.Login(context.Background(), domain.LoginInput{
		Email:    stored.Email,
		Password: "wrong",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

// TestLogin_Fail_UnknownEmail: email desconhecido produz o MESMO Unauthorized
// da senha errada.
func TestLogin_Fail_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	mockRepo.On("FindByEmail", mock.Anything, "ninguem@escola.edu.br").
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado"))

	_, err := svc.Login(context.Background(), domain.LoginInput{
		Email:    "ninguem@escola.edu.br",
		Password: "secret",
	})

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

func TestLogin_Fail_MissingCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	_, err := svc.Login(context.Background(), domain.LoginInput{})

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

// TestLogin_Fail_RepoError: falha do DB propaga inalterada, sem virar 401.
func TestLogin_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	dbErr := apperror.NewDBError("failed to find user by email", errors.New("connection lost"))
	mockRepo.On("FindByEmail", mock.Anything, "ana@escola.edu.br").Return(domain.User{}, dbErr)

	_, err := svc.Login(context.Background(), domain.LoginInput{
		Email:    "ana@escola.edu.br",
		Password: "secret",
	})

	assert.Equal(t, dbErr, err)
}
