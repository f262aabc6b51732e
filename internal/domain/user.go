package domain

import "context"

// User representa a entidade do usuário no sistema.
// A senha é omitida do JSON de resposta pela tag `json:"-"`.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// Role é a enumeração fechada de papéis do usuário.
// DOCENTE é o único papel autorizado a criar, editar e remover posts.
type Role string

const (
	RoleDocente  Role = "DOCENTE"
	RoleDiscente Role = "DISCENTE"
)

// IDs fixos da tabela roles, semeados pela migration 0001.
// Os valores são estáveis entre ambientes para que role_id possa
// ser resolvido sem consulta ao banco.
const (
	RoleDocenteID  = "929f32a7-ffea-4d5c-8aa8-a0f54a0a5c0c"
	RoleDiscenteID = "c8044beb-61da-4e4d-b639-1b5f796e95af"
)

// ParseRole resolve o identificador textual do papel (chave da enumeração)
// para a variante correspondente. Retorna false para valores fora da enumeração.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleDocente:
		return RoleDocente, true
	case RoleDiscente:
		return RoleDiscente, true
	}
	return "", false
}

// Valid reporta se o papel pertence à enumeração fechada.
func (r Role) Valid() bool {
	return r == RoleDocente || r == RoleDiscente
}

// ID retorna o identificador fixo do papel na tabela roles.
func (r Role) ID() string {
	switch r {
	case RoleDocente:
		return RoleDocenteID
	case RoleDiscente:
		return RoleDiscenteID
	}
	return ""
}

// UserRepository define o contrato de persistência para a entidade User.
// A ausência de um usuário é sinalizada com um NotFoundError tipado, nunca
// com um valor zero silencioso.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	FindAll(ctx context.Context, page Pagination) ([]User, error)
	FindByID(ctx context.Context, id string) (User, error)
	// Update substitui todos os campos mutáveis e retorna o usuário sem a senha.
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id string) error
	FindByEmail(ctx context.Context, email string) (User, error)
}
