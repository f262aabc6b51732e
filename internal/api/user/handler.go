package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"edupost/internal/domain"
	apperror "edupost/internal/errors"
	"edupost/internal/pkg/logger"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	Create(ctx context.Context, in domain.CreateUserInput) (domain.User, error)
	FindAll(ctx context.Context, page domain.Pagination) ([]domain.User, error)
	FindOne(ctx context.Context, id string) (domain.User, error)
	Update(ctx context.Context, id string, in domain.UpdateUserInput) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// CreateUserHandler lida com a requisição POST /v1/users.
// @Summary Cria um novo usuário
// @Description Cria um usuário com papel DOCENTE ou DISCENTE.
// @Tags users
// @Accept json
// @Produce json
// @Param user body domain.CreateUserInput true "Dados do usuário"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /users [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in domain.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	created, err := h.Service.Create(ctx, in)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, created, nil, http.StatusCreated)
}

// FindAllHandler lida com a requisição GET /v1/users.
// @Summary Lista usuários paginados
// @Tags users
// @Produce json
// @Param page query int false "Página (1-based, padrão 1)"
// @Param limit query int false "Itens por página (padrão 10)"
// @Success 200 {array} domain.User
// @Failure 500 {object} domain.ErrorResponse
// @Router /users [get]
func (h *Handler) FindAllHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := h.Service.FindAll(r.Context(), domain.Pagination{Page: page, Limit: limit})
	h.handleServiceResponse(w, r, users, err, http.StatusOK)
}

// FindOneHandler lida com a requisição GET /v1/users/{id}.
// @Summary Busca um usuário pelo ID
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário (UUID)"
// @Success 200 {object} domain.User
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 500 {object} domain.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) FindOneHandler(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.Service.FindOne(r.Context(), id)
	h.handleServiceResponse(w, r, user, err, http.StatusOK)
}

// UpdateUserHandler lida com a requisição PUT /v1/users/{id}.
// @Summary Atualiza um usuário
// @Description Substitui nome, email, senha e papel de uma vez (sem atualização parcial).
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário (UUID)"
// @Param user body domain.UpdateUserInput true "Todos os campos mutáveis"
// @Success 200 {object} domain.User "Usuário atualizado, sem a senha"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 500 {object} domain.ErrorResponse
// @Router /users/{id} [put]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var in domain.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	updated, err := h.Service.Update(ctx, id, in)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updated, nil, http.StatusOK)
}

// DeleteUserHandler lida com a requisição DELETE /v1/users/{id}.
// @Summary Remove um usuário
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário (UUID)"
// @Success 204 "Usuário removido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 500 {object} domain.ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}
