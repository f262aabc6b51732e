package userservice_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/logger"
	"edupost/internal/service/userservice"
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

func newService(repo *MockUserRepository) *userservice.Service {
	return userservice.NewService(repo, logger.NewLogger("fatal"))
}

// --- Create ---

func TestCreateUser_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	expected := domain.User{
		ID:    uuid.NewString(),
		Name:  "Profa. Ana",
		Email: "ana@escola.edu.br",
		Role:  domain.RoleDocente,
	}

	// O papel chega resolvido da enumeração até o repositório.
	mockRepo.On("Create", mock.Anything, domain.User{
		Name:     "Profa. Ana",
		Email:    "ana@escola.edu.br",
		Password: "segredo",
		Role:     domain.RoleDocente,
	}).Return(expected, nil)

	created, err := svc.Create(context.Background(), domain.CreateUserInput{
		Name:     "Profa. Ana",
		Email:    "ana@escola.edu.br",
		Password: "segredo",
		RoleID:   "DOCENTE",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleDocente, created.Role)
	assert.NotEqual(t, "", created.ID)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser_Fail_UnknownRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	_, err := svc.Create(context.Background(), domain.CreateUserInput{
		Name:     "Fulano",
		Email:    "fulano@escola.edu.br",
		Password: "segredo",
		RoleID:   "ADMIN",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUser_Fail_InvalidEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	_, err := svc.Create(context.Background(), domain.CreateUserInput{
		Name:     "Fulano",
		Email:    "nao-e-email",
		Password: "segredo",
		RoleID:   "DISCENTE",
	})

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// TestCreateUser_Fail_DuplicateEmail: a unicidade vem do armazenamento e o
// conflito propaga inalterado.
func TestCreateUser_Fail_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	conflict := apperror.NewConflictError("O email 'ana@escola.edu.br' já está em uso.")
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.User{}, conflict)

	_, err := svc.Create(context.Background(), domain.CreateUserInput{
		Name:     "Profa. Ana",
		Email:    "ana@escola.edu.br",
		Password: "segredo",
		RoleID:   "DOCENTE",
	})

	assert.Equal(t, conflict, err)
}

// --- FindAll / FindOne ---

func TestFindAllUsers_AppliesDefaults(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	mockRepo.On("FindAll", mock.Anything, domain.Pagination{Page: 1, Limit: 10}).
		Return([]domain.User{}, nil)

	_, err := svc.FindAll(context.Background(), domain.Pagination{})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestFindOneUser_Fail_Absent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	id := uuid.NewString()
	mockRepo.On("FindByID", mock.Anything, id).
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado"))

	_, err := svc.FindOne(context.Background(), id)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestFindOneUser_Fail_InvalidID(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	_, err := svc.FindOne(context.Background(), "abc")

	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// --- Update ---

// TestUpdateUser_Success: substituição completa dos campos mutáveis; o
// retorno do repositório não carrega a senha.
func TestUpdateUser_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	id := uuid.NewString()
	stored := domain.User{
		ID:       id,
		Name:     "Aluno João",
		Email:    "joao@escola.edu.br",
		Password: "antiga",
		Role:     domain.RoleDiscente,
	}
	mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)

	replaced := domain.User{
		ID:       id,
		Name:     "Prof. João",
		Email:    "joao.prof@escola.edu.br",
		Password: "nova",
		Role:     domain.RoleDocente,
	}
	returned := domain.User{
		ID:    id,
		Name:  "Prof. João",
		Email: "joao.prof@escola.edu.br",
		Role:  domain.RoleDocente,
	}
	mockRepo.On("Update", mock.Anything, replaced).Return(returned, nil)

	updated, err := svc.Update(context.Background(), id, domain.UpdateUserInput{
		Name:     "Prof. João",
		Email:    "joao.prof@escola.edu.br",
		Password: "nova",
		RoleID:   "DOCENTE",
	})

	assert.NoError(t, err)
	assert.Equal(t, "", updated.Password)
	assert.Equal(t, domain.RoleDocente, updated.Role)
	mockRepo.AssertExpectations(t)
}

func TestUpdateUser_Fail_Absent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	id := uuid.NewString()
	mockRepo.On("FindByID", mock.Anything, id).
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado"))

	_, err := svc.Update(context.Background(), id, domain.UpdateUserInput{
		Name:     "Fulano",
		Email:    "fulano@escola.edu.br",
		Password: "segredo",
		RoleID:   "DISCENTE",
	})

	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// --- Delete ---

func TestDeleteUser_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	id := uuid.NewString()
	mockRepo.On("FindByID", mock.Anything, id).Return(domain.User{ID: id}, nil)
	mockRepo.On("Delete", mock.Anything, id).Return(nil)

	err := svc.Delete(context.Background(), id)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestDeleteUser_Fail_Absent: a checagem de existência precede a remoção.
func TestDeleteUser_Fail_Absent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	id := uuid.NewString()
	mockRepo.On("FindByID", mock.Anything, id).
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado"))

	err := svc.Delete(context.Background(), id)

	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
