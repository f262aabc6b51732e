package postrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/cache"
	"edupost/internal/pkg/logger"
)

// Chave de cache para posts individuais (estratégia Cache-Aside).
const postCacheKey = "post:%s"

// Colunas retornadas em toda leitura de post. Da relação com o dono apenas
// o user_id é exposto, nunca uma cópia dos dados do usuário.
const postColumns = `id, title, description, category, created_at, updated_at, user_id`

// PostRepository implementa a interface domain.PostRepository sobre o
// PostgreSQL, com cache Redis para a busca por ID.
type PostRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewPostRepository cria e retorna uma nova instância do Repositório de Posts.
func NewPostRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *PostRepository {
	return &PostRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Create persiste um novo post. O id e os timestamps são gerados aqui.
func (r *PostRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	post.ID = uuid.NewString()
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	const query = `INSERT INTO posts (id, title, description, category, created_at, updated_at, user_id)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		post.ID,
		post.Title,
		post.Description,
		post.Category,
		post.CreatedAt,
		post.UpdatedAt,
		post.User.ID,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir post no DB.", err)
		return domain.Post{}, apperror.NewDBError("failed to insert post", err)
	}

	r.logger.Info("Post criado no repositório.", map[string]interface{}{"post_id": post.ID, "user_id": post.User.ID})
	return post, nil
}

// FindAll lista posts com paginação 1-based (offset = (page-1)*limit).
func (r *PostRepository) FindAll(ctx context.Context, page domain.Pagination) ([]domain.Post, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, postColumns)

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Offset())
	if err != nil {
		r.logger.Error("Falha ao listar posts no DB.", err)
		return nil, apperror.NewDBError("failed to list posts", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// FindByID busca um post pelo ID, utilizando a estratégia Cache-Aside.
func (r *PostRepository) FindByID(ctx context.Context, id string) (domain.Post, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(postCacheKey, id)
	var post domain.Post

	// 1. Tentar obter do Cache (Redis)
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &post) == nil {
			return post, nil
		}
		// Desserialização falhou: segue para o DB e o cache será reescrito.
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (conexão perdida): logar e seguir para o DB.
		r.logger.Warn("Falha ao ler post do cache.", map[string]interface{}{"post_id": id, "error": err.Error()})
	}

	// 2. Busca no Banco de Dados (PostgreSQL)
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1`, postColumns)
	row := r.DB.QueryRowContext(ctxTimeout, query, id)

	err = row.Scan(
		&post.ID,
		&post.Title,
		&post.Description,
		&post.Category,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.User.ID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, apperror.NewNotFoundError(fmt.Sprintf("Post com ID %s não encontrado", id))
		}
		r.logger.Error("Falha ao buscar post por ID no DB.", err)
		return domain.Post{}, apperror.NewDBError("failed to find post by id", err)
	}

	// 3. Popular o cache para futuras requisições.
	if postJSON, marshalErr := json.Marshal(post); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, postJSON, r.CacheTTL)
	}

	return post, nil
}

// Update persiste os campos mutáveis do post (título, descrição, categoria).
// O dono e o id nunca mudam. A entrada do cache é invalidada.
func (r *PostRepository) Update(ctx context.Context, post domain.Post) (domain.Post, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		UPDATE posts
		SET title = $2, description = $3, category = $4, updated_at = $5
		WHERE id = $1
		RETURNING created_at`

	post.UpdatedAt = time.Now().UTC()

	err := r.DB.QueryRowContext(ctxTimeout, query,
		post.ID,
		post.Title,
		post.Description,
		post.Category,
		post.UpdatedAt,
	).Scan(&post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, apperror.NewNotFoundError(fmt.Sprintf("Post com ID %s não encontrado", post.ID))
		}
		r.logger.Error("Falha ao atualizar post no DB.", err)
		return domain.Post{}, apperror.NewDBError("failed to update post", err)
	}

	r.invalidate(ctxTimeout, post.ID)

	r.logger.Info("Post atualizado no repositório.", map[string]interface{}{"post_id": post.ID})
	return post, nil
}

// Delete remove o post pelo ID e invalida o cache.
// Remover um id inexistente não é erro: tolera a remoção concorrente entre
// a checagem de existência do serviço e esta chamada.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		r.logger.Error("Falha ao remover post no DB.", err)
		return apperror.NewDBError("failed to delete post", err)
	}

	r.invalidate(ctxTimeout, id)

	r.logger.Info("Post removido do repositório.", map[string]interface{}{"post_id": id})
	return nil
}

// FindTeacherPosts lista os posts de um docente específico, paginados.
func (r *PostRepository) FindTeacherPosts(ctx context.Context, teacherID string, page domain.Pagination) ([]domain.Post, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM posts WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, postColumns)

	rows, err := r.DB.QueryContext(ctxTimeout, query, teacherID, page.Limit, page.Offset())
	if err != nil {
		r.logger.Error("Falha ao listar posts do docente no DB.", err)
		return nil, apperror.NewDBError("failed to list teacher posts", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// FindByText busca substring case-insensitive em título OU descrição.
// Nenhum resultado produz uma lista vazia, nunca erro.
func (r *PostRepository) FindByText(ctx context.Context, text string) ([]domain.Post, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s FROM posts
		WHERE title ILIKE '%%' || $1 || '%%' OR description ILIKE '%%' || $1 || '%%'
		ORDER BY created_at DESC`, postColumns)

	rows, err := r.DB.QueryContext(ctxTimeout, query, text)
	if err != nil {
		r.logger.Error("Falha ao buscar posts por texto no DB.", err)
		return nil, apperror.NewDBError("failed to search posts", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// invalidate descarta a entrada de cache de um post após mutação.
func (r *PostRepository) invalidate(ctx context.Context, id string) {
	key := fmt.Sprintf(postCacheKey, id)
	if err := r.Cache.Delete(ctx, key); err != nil {
		r.logger.Warn("Falha ao invalidar cache do post.", map[string]interface{}{"post_id": id, "error": err.Error()})
	}
}

// scanPosts mapeia as linhas retornadas para a lista de entidades.
func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	posts := []domain.Post{}
	for rows.Next() {
		var post domain.Post
		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Description,
			&post.Category,
			&post.CreatedAt,
			&post.UpdatedAt,
			&post.User.ID,
		)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan post row", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate post rows", err)
	}
	return posts, nil
}
