package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/logger"
)

// Código de erro do PostgreSQL para violação de chave única (email duplicado).
const pgUniqueViolation = "23505"

// UserRepository implementa a interface domain.UserRepository sobre o PostgreSQL.
// O papel do usuário vive na tabela roles e é resolvido por JOIN na leitura.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Create insere um novo usuário no banco de dados.
// A unicidade de email é responsabilidade do índice único: a violação é
// traduzida para um ConflictError.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()

	const query = `INSERT INTO users (id, name, email, password, role_id)
                   VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(ctxTimeout, query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.Role.ID(),
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			r.logger.Warn("Email duplicado ao criar usuário.", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", user.Email))
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to insert user", err)
	}

	r.logger.Info("Usuário criado no repositório.", map[string]interface{}{"user_id": user.ID, "role": string(user.Role)})
	return user, nil
}

// FindAll lista usuários com paginação 1-based (offset = (page-1)*limit).
func (r *UserRepository) FindAll(ctx context.Context, page domain.Pagination) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT u.id, u.name, u.email, u.password, ro.type
		FROM users u
		JOIN roles ro ON ro.id = u.role_id
		ORDER BY u.name
		LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctxTimeout, query, page.Limit, page.Offset())
	if err != nil {
		r.logger.Error("Falha ao listar usuários no DB.", err)
		return nil, apperror.NewDBError("failed to list users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role); err != nil {
			return nil, apperror.NewDBError("failed to scan user row", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate user rows", err)
	}

	return users, nil
}

// FindByID busca um usuário pelo ID, resolvendo o papel por JOIN.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT u.id, u.name, u.email, u.password, ro.type
		FROM users u
		JOIN roles ro ON ro.id = u.role_id
		WHERE u.id = $1`

	row := r.DB.QueryRowContext(ctxTimeout, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não encontrado", id))
		}
		r.logger.Error("Falha ao buscar usuário por ID no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to find user by id", err)
	}

	return user, nil
}

// Update substitui todos os campos mutáveis do usuário.
// O retorno não carrega a senha.
func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		UPDATE users
		SET name = $2, email = $3, password = $4, role_id = $5
		WHERE id = $1
		RETURNING id, name, email`

	row := r.DB.QueryRowContext(ctxTimeout, query,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.Role.ID(),
	)

	var updated domain.User
	err := row.Scan(&updated.ID, &updated.Name, &updated.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %s não encontrado", user.ID))
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", user.Email))
		}
		r.logger.Error("Falha ao atualizar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to update user", err)
	}
	updated.Role = user.Role

	r.logger.Info("Usuário atualizado no repositório.", map[string]interface{}{"user_id": updated.ID})
	return updated, nil
}

// Delete remove um usuário pelo ID. Remover um id inexistente não é erro.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM users WHERE id = $1`, id); err != nil {
		r.logger.Error("Falha ao remover usuário no DB.", err)
		return apperror.NewDBError("failed to delete user", err)
	}

	r.logger.Info("Usuário removido do repositório.", map[string]interface{}{"user_id": id})
	return nil
}

// FindByEmail busca um usuário pelo endereço de e-mail (chave de login).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `
		SELECT u.id, u.name, u.email, u.password, ro.type
		FROM users u
		JOIN roles ro ON ro.id = u.role_id
		WHERE u.email = $1`

	row := r.DB.QueryRowContext(ctxTimeout, query, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
		}
		r.logger.Error("Falha ao buscar usuário por email no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to find user by email", err)
	}

	return user, nil
}
