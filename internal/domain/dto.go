package domain

// Payloads de entrada das operações, já no formato validado que o adaptador
// web entrega aos serviços. Espelham os esquemas de requisição da API.

// CreateUserInput é o payload de criação de usuário.
// RoleID é a chave da enumeração de papéis ("DOCENTE" ou "DISCENTE").
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   string `json:"role_id"`
}

// UpdateUserInput substitui todos os campos mutáveis do usuário (sem atualização parcial).
type UpdateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   string `json:"role_id"`
}

// CreatePostInput é o payload de criação de post.
// UserID identifica o ator, que deve ser um DOCENTE.
type CreatePostInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UserID      string `json:"user_id"`
}

// UpdatePostInput é o payload de atualização de post.
type UpdatePostInput struct {
	PostID      string `json:"post_id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// DeletePostInput é o payload de remoção de post.
type DeletePostInput struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

// FindTeacherPostsInput identifica o docente inspecionado e a paginação.
type FindTeacherPostsInput struct {
	TeacherID string `json:"teacher_id"`
	Pagination
}

// LoginInput é o payload de autenticação.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
