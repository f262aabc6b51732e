package postservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/logger"
)

// Service implementa a lógica de negócio dos posts: o ciclo de vida
// autorizado por papel e por posse.
//
// Toda mutação segue a mesma ordem de verificação, observável pelo chamador:
//  1. papel do ator (DOCENTE) — ator inexistente e papel errado produzem o
//     MESMO Unauthorized;
//  2. existência do post alvo (NotFound);
//  3. posse do post (Unauthorized).
// Cada verificação interrompe a operação antes de qualquer escrita.
type Service struct {
	postRepo domain.PostRepository
	userRepo domain.UserRepository
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Posts.
func NewService(postRepo domain.PostRepository, userRepo domain.UserRepository, logger logger.Logger) *Service {
	return &Service{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// requireDocente carrega o ator e garante que ele é um DOCENTE.
// A ausência do usuário e o papel errado colapsam no mesmo erro para não
// vazar a existência de contas. Falhas do repositório propagam inalteradas.
func (s *Service) requireDocente(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.User{}, apperror.NewUnauthorizedError("Usuário não autorizado.")
		}
		return domain.User{}, err
	}

	if user.Role != domain.RoleDocente {
		return domain.User{}, apperror.NewUnauthorizedError("Usuário não autorizado.")
	}

	return user, nil
}

// validateFields valida os campos textuais comuns a criação e atualização.
func validateFields(title, description, category string) error {
	if title == "" || description == "" || category == "" {
		return apperror.NewValidationError("Título, descrição e categoria são obrigatórios.")
	}
	if len(title) > domain.TitleMaxLen {
		return apperror.NewValidationError("O título deve ter no máximo 255 caracteres.")
	}
	return nil
}

// Create cria um novo post em nome do ator informado.
// Apenas usuários DOCENTE podem criar posts; o ator vira o dono.
func (s *Service) Create(ctx context.Context, in domain.CreatePostInput) (domain.Post, error) {
	s.logger.Debug("Iniciando criação de post no serviço.", map[string]interface{}{"user_id": in.UserID})

	if err := validateFields(in.Title, in.Description, in.Category); err != nil {
		return domain.Post{}, err
	}
	if _, err := uuid.Parse(in.UserID); err != nil {
		return domain.Post{}, apperror.NewValidationError("O user_id deve ser um UUID válido.")
	}

	actor, err := s.requireDocente(ctx, in.UserID)
	if err != nil {
		s.logger.Warn("Criação de post negada.", map[string]interface{}{"user_id": in.UserID})
		return domain.Post{}, err
	}

	post := domain.Post{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		User:        domain.PostOwner{ID: actor.ID},
	}

	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		s.logger.Error("Falha ao criar post no repositório.", err)
		return domain.Post{}, err
	}

	s.logger.Info("Post criado com sucesso.", map[string]interface{}{"post_id": created.ID, "user_id": actor.ID})
	return created, nil
}

// FindAll lista posts paginados. Leitura pública, sem filtro de posse.
func (s *Service) FindAll(ctx context.Context, page domain.Pagination) ([]domain.Post, error) {
	return s.postRepo.FindAll(ctx, page.Normalize())
}

// FindOne busca um post pelo ID. Leitura pública.
func (s *Service) FindOne(ctx context.Context, id string) (domain.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Post{}, apperror.NewValidationError("O ID do post deve ser um UUID válido.")
	}

	return s.postRepo.FindByID(ctx, id)
}

// Update sobrescreve título, descrição e categoria de um post.
// Exige que o ator seja DOCENTE e dono exato do post; um docente não edita
// o post de outro docente.
func (s *Service) Update(ctx context.Context, in domain.UpdatePostInput) (domain.Post, error) {
	s.logger.Debug("Iniciando atualização de post no serviço.", map[string]interface{}{"post_id": in.PostID, "user_id": in.UserID})

	if err := validateFields(in.Title, in.Description, in.Category); err != nil {
		return domain.Post{}, err
	}
	if _, err := uuid.Parse(in.PostID); err != nil {
		return domain.Post{}, apperror.NewValidationError("O post_id deve ser um UUID válido.")
	}
	if _, err := uuid.Parse(in.UserID); err != nil {
		return domain.Post{}, apperror.NewValidationError("O user_id deve ser um UUID válido.")
	}

	// 1. Papel do ator. Vem antes da existência do post: um não-docente
	// recebe Unauthorized mesmo quando o post não existe.
	if _, err := s.requireDocente(ctx, in.UserID); err != nil {
		s.logger.Warn("Atualização de post negada pelo papel do ator.", map[string]interface{}{"user_id": in.UserID})
		return domain.Post{}, err
	}

	// 2. Existência do alvo.
	post, err := s.postRepo.FindByID(ctx, in.PostID)
	if err != nil {
		return domain.Post{}, err
	}

	// 3. Posse.
	if post.User.ID != in.UserID {
		s.logger.Warn("Atualização de post negada pela posse.", map[string]interface{}{"post_id": in.PostID, "user_id": in.UserID})
		return domain.Post{}, apperror.NewUnauthorizedError("Usuário não autorizado.")
	}

	// Sobrescreve apenas os campos mutáveis; id e dono permanecem.
	post.Title = in.Title
	post.Description = in.Description
	post.Category = in.Category

	updated, err := s.postRepo.Update(ctx, post)
	if err != nil {
		s.logger.Error("Falha ao atualizar post no repositório.", err)
		return domain.Post{}, err
	}

	s.logger.Info("Post atualizado com sucesso.", map[string]interface{}{"post_id": updated.ID})
	return updated, nil
}

// Delete remove um post. Mesma tripla de verificações da atualização:
// papel, existência e posse, nesta ordem.
func (s *Service) Delete(ctx context.Context, in domain.DeletePostInput) error {
	s.logger.Debug("Iniciando remoção de post no serviço.", map[string]interface{}{"post_id": in.PostID, "user_id": in.UserID})

	if _, err := uuid.Parse(in.PostID); err != nil {
		return apperror.NewValidationError("O post_id deve ser um UUID válido.")
	}
	if _, err := uuid.Parse(in.UserID); err != nil {
		return apperror.NewValidationError("O user_id deve ser um UUID válido.")
	}

	if _, err := s.requireDocente(ctx, in.UserID); err != nil {
		s.logger.Warn("Remoção de post negada pelo papel do ator.", map[string]interface{}{"user_id": in.UserID})
		return err
	}

	post, err := s.postRepo.FindByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.User.ID != in.UserID {
		s.logger.Warn("Remoção de post negada pela posse.", map[string]interface{}{"post_id": in.PostID, "user_id": in.UserID})
		return apperror.NewUnauthorizedError("Usuário não autorizado.")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		s.logger.Error("Falha ao remover post no repositório.", err)
		return err
	}

	s.logger.Info("Post removido com sucesso.", map[string]interface{}{"post_id": in.PostID})
	return nil
}

// FindTeacherPosts lista os posts de um docente específico.
// Verifica apenas que o SUJEITO consultado é de fato um DOCENTE; não é um
// endpoint de autoatendimento, o chamador não precisa ser o próprio docente.
func (s *Service) FindTeacherPosts(ctx context.Context, in domain.FindTeacherPostsInput) ([]domain.Post, error) {
	if _, err := uuid.Parse(in.TeacherID); err != nil {
		return nil, apperror.NewValidationError("O teacher_id deve ser um UUID válido.")
	}

	if _, err := s.requireDocente(ctx, in.TeacherID); err != nil {
		s.logger.Warn("Consulta de posts de docente negada.", map[string]interface{}{"teacher_id": in.TeacherID})
		return nil, err
	}

	return s.postRepo.FindTeacherPosts(ctx, in.TeacherID, in.Pagination.Normalize())
}

// FindByText busca posts por substring case-insensitive em título ou
// descrição. Leitura pública; nenhum resultado produz lista vazia.
func (s *Service) FindByText(ctx context.Context, text string) ([]domain.Post, error) {
	return s.postRepo.FindByText(ctx, text)
}
