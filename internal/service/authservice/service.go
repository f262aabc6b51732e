package authservice

import (
	"context"
	"errors"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/logger"
)

// Service implementa a verificação de credenciais.
type Service struct {
	userRepo domain.UserRepository
	logger   logger.Logger
}

// NewService cria uma nova instância do Serviço de Autenticação.
func NewService(repo domain.UserRepository, logger logger.Logger) *Service {
	return &Service{
		userRepo: repo,
		logger:   logger,
	}
}

// Login verifica as credenciais e retorna o usuário correspondente.
// Usuário ausente e senha incorreta produzem o MESMO Unauthorized, para não
// dar dicas sobre quais emails existem.
//
// A comparação é por igualdade em texto puro: contrato de compatibilidade
// com a base legada (ver DESIGN.md). Não armazene credenciais reais assim.
func (s *Service) Login(ctx context.Context, in domain.LoginInput) (domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return domain.User{}, apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			s.logger.Warn("Login com email desconhecido.", map[string]interface{}{"email": in.Email})
			return domain.User{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		// Falha do repositório (DB) propaga inalterada.
		return domain.User{}, err
	}

	if user.Password != in.Password {
		s.logger.Warn("Login com senha incorreta.", map[string]interface{}{"user_id": user.ID})
		return domain.User{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"user_id": user.ID, "role": string(user.Role)})
	return user, nil
}
