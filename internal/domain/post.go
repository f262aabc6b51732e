package domain

import (
	"context"
	"time"
)

// TitleMaxLen limita o tamanho do título de um post.
const TitleMaxLen = 255

// Post representa a publicação de um docente.
// O dono é uma relação por referência (coluna user_id no banco): na leitura
// apenas o id do dono é resolvido, nunca uma cópia dos dados do usuário.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        PostOwner `json:"user"`
}

// PostOwner é a referência ao usuário dono do post.
type PostOwner struct {
	ID string `json:"id"`
}

// PostRepository define o contrato de persistência para a entidade Post.
type PostRepository interface {
	Create(ctx context.Context, post Post) (Post, error)
	FindAll(ctx context.Context, page Pagination) ([]Post, error)
	FindByID(ctx context.Context, id string) (Post, error)
	Update(ctx context.Context, post Post) (Post, error)
	// Delete remove o post pelo id. Remover um id inexistente não é erro:
	// tolera a janela entre a checagem de existência e a remoção.
	Delete(ctx context.Context, id string) error
	FindTeacherPosts(ctx context.Context, teacherID string, page Pagination) ([]Post, error)
	// FindByText busca substring case-insensitive em título OU descrição.
	FindByText(ctx context.Context, text string) ([]Post, error)
}
