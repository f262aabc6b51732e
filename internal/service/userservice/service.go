package userservice

import (
	"context"
	"net/mail"

	"github.com/google/uuid"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/logger"
)

// Service implementa a lógica de negócio da entidade User.
type Service struct {
	userRepo domain.UserRepository
	logger   logger.Logger
}

// NewService cria uma nova instância do Serviço de Usuários, injetando o Repositório.
func NewService(repo domain.UserRepository, logger logger.Logger) *Service {
	return &Service{
		userRepo: repo,
		logger:   logger,
	}
}

// validateInput valida os campos comuns a criação e atualização e resolve
// o papel a partir da enumeração fechada.
func validateInput(name, email, password, roleID string) (domain.Role, error) {
	if name == "" || email == "" || password == "" {
		return "", apperror.NewValidationError("Nome, email e senha são obrigatórios.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperror.NewValidationError("O email informado não é válido.")
	}
	role, ok := domain.ParseRole(roleID)
	if !ok {
		return "", apperror.NewValidationError("O papel deve ser DOCENTE ou DISCENTE.")
	}
	return role, nil
}

// Create cria um novo usuário com o papel resolvido da enumeração.
// A unicidade de email fica a cargo do armazenamento (índice único).
func (s *Service) Create(ctx context.Context, in domain.CreateUserInput) (domain.User, error) {
	s.logger.Debug("Iniciando criação de usuário no serviço.", map[string]interface{}{"email": in.Email})

	role, err := validateInput(in.Name, in.Email, in.Password, in.RoleID)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     role,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		s.logger.Error("Falha ao criar usuário no repositório.", err)
		return domain.User{}, err
	}

	s.logger.Info("Usuário criado com sucesso.", map[string]interface{}{"user_id": created.ID, "role": string(created.Role)})
	return created, nil
}

// FindAll lista usuários paginados, sem enriquecimento.
func (s *Service) FindAll(ctx context.Context, page domain.Pagination) ([]domain.User, error) {
	return s.userRepo.FindAll(ctx, page.Normalize())
}

// FindOne busca um usuário pelo ID. Falha com NotFound se ausente.
func (s *Service) FindOne(ctx context.Context, id string) (domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, apperror.NewValidationError("O ID do usuário deve ser um UUID válido.")
	}

	return s.userRepo.FindByID(ctx, id)
}

// Update substitui TODOS os campos mutáveis do usuário (sem atualização
// parcial). O retorno não carrega a senha.
func (s *Service) Update(ctx context.Context, id string, in domain.UpdateUserInput) (domain.User, error) {
	s.logger.Debug("Iniciando atualização de usuário no serviço.", map[string]interface{}{"user_id": id})

	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, apperror.NewValidationError("O ID do usuário deve ser um UUID válido.")
	}

	role, err := validateInput(in.Name, in.Email, in.Password, in.RoleID)
	if err != nil {
		return domain.User{}, err
	}

	// Existência antes da escrita: ausente falha com NotFound.
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Password = in.Password
	user.Role = role

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		s.logger.Error("Falha ao atualizar usuário no repositório.", err)
		return domain.User{}, err
	}

	s.logger.Info("Usuário atualizado com sucesso.", map[string]interface{}{"user_id": updated.ID})
	return updated, nil
}

// Delete remove um usuário pelo ID, após checagem de existência.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("Iniciando remoção de usuário no serviço.", map[string]interface{}{"user_id": id})

	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID do usuário deve ser um UUID válido.")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Falha ao remover usuário no repositório.", err)
		return err
	}

	s.logger.Info("Usuário removido com sucesso.", map[string]interface{}{"user_id": id})
	return nil
}
