package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/logger"
)

// AuthService define o contrato de verificação de credenciais.
type AuthService interface {
	Login(ctx context.Context, in domain.LoginInput) (domain.User, error)
}

// TokenService define o contrato de emissão de token usado após o login.
// A emissão do JWT é responsabilidade deste adaptador, não do serviço de
// autenticação.
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
}

// LoginResponse é o corpo de resposta do login bem-sucedido.
type LoginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Handler agrupa os métodos de Handler de autenticação.
type Handler struct {
	Service  AuthService
	TokenSvc TokenService
	Logger   logger.Logger
}

// NewHandler cria uma nova instância do Handler de autenticação.
func NewHandler(svc AuthService, tokenSvc TokenService, log logger.Logger) *Handler {
	return &Handler{
		Service:  svc,
		TokenSvc: tokenSvc,
		Logger:   log,
	}
}

// writeError envia a resposta de erro padronizada.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de autenticação:", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// LoginHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Verifica as credenciais e emite um token para as rotas protegidas.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body domain.LoginInput true "Credenciais do usuário (email e senha)"
// @Success 200 {object} LoginResponse "Usuário autenticado e token emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var in domain.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeError(w, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	user, err := h.Service.Login(ctx, in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	token, err := h.TokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		h.writeError(w, apperror.NewInternalError("Falha ao gerar token de autenticação.", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(LoginResponse{User: user, Token: token})
}
