package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"401"`
	Category string `json:"category" example:"UNAUTHORIZED"`
	Message  string `json:"message" example:"Usuário não autorizado."`
}
