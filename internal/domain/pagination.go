package domain

// Valores padrão e teto de paginação aplicados pela camada de Serviço.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination carrega os parâmetros de paginação das listagens.
// A convenção é 1-based: o offset no repositório é (Page-1)*Limit.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize aplica os padrões e o teto de itens por página.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset calcula o deslocamento 0-based para a query SQL.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
