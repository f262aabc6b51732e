package post

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

// PostService define o contrato que o Handler espera da camada de Serviço.
type PostService interface {
	Create(ctx context.Context, in domain.CreatePostInput) (domain.Post, error)
	FindAll(ctx context.Context, page domain.Pagination) ([]domain.Post, error)
	FindOne(ctx context.Context, id string) (domain.Post, error)
	Update(ctx context.Context, in domain.UpdatePostInput) (domain.Post, error)
	Delete(ctx context.Context, in domain.DeletePostInput) error
	FindTeacherPosts(ctx context.Context, in domain.FindTeacherPostsInput) ([]domain.Post, error)
	FindByText(ctx context.Context, text string) ([]domain.Post, error)
}

// Handler agrupa todos os métodos de Handler de posts.
type Handler struct {
	Service PostService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc PostService, log logger.Logger) *Handler {
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

// paginationFromQuery extrai page/limit da query string.
// Valores ausentes ou inválidos ficam zerados; o Serviço aplica os padrões.
func paginationFromQuery(r *http.Request) domain.Pagination {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return domain.Pagination{Page: page, Limit: limit}
}

// CreatePostHandler lida com a requisição POST /v1/posts.
// @Summary Cria um novo post
// @Description Cria um post em nome do ator informado; apenas DOCENTE pode criar.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body domain.CreatePostInput true "Dados do post e ator (user_id)"
// @Success 201 {object} domain.Post "Post criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Ator inexistente ou sem papel DOCENTE"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /posts [post]
func (h *Handler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in domain.CreatePostInput
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

// FindAllHandler lida com a requisição GET /v1/posts.
// @Summary Lista posts paginados
// @Tags posts
// @Produce json
// @Param page query int false "Página (1-based, padrão 1)"
// @Param limit query int false "Itens por página (padrão 10)"
// @Success 200 {array} domain.Post
// @Failure 500 {object} domain.ErrorResponse
// @Router /posts [get]
func (h *Handler) FindAllHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.FindAll(r.Context(), paginationFromQuery(r))
	h.handleServiceResponse(w, r, posts, err, http.StatusOK)
}

// FindOneHandler lida com a requisição GET /v1/posts/{id}.
// @Summary Busca um post pelo ID
// @Tags posts
// @Produce json
// @Param id path string true "ID do post (UUID)"
// @Success 200 {object} domain.Post
// @Failure 404 {object} domain.ErrorResponse "Post não encontrado"
// @Failure 500 {object} domain.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handler) FindOneHandler(w http.ResponseWriter, r *http.Request, id string) {
	post, err := h.Service.FindOne(r.Context(), id)
	h.handleServiceResponse(w, r, post, err, http.StatusOK)
}

// UpdatePostHandler lida com a requisição PUT /v1/posts.
// @Summary Atualiza um post
// @Description Sobrescreve título, descrição e categoria; exige papel DOCENTE e posse do post.
// @Tags posts
// @Accept json
// @Produce json
// @Param post body domain.UpdatePostInput true "Campos do post, post_id e ator (user_id)"
// @Success 200 {object} domain.Post
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse "Ator sem papel DOCENTE ou sem posse do post"
// @Failure 404 {object} domain.ErrorResponse "Post não encontrado"
// @Failure 500 {object} domain.ErrorResponse
// @Router /posts [put]
func (h *Handler) UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in domain.UpdatePostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	updated, err := h.Service.Update(ctx, in)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, updated, nil, http.StatusOK)
}

// DeletePostHandler lida com a requisição DELETE /v1/posts?post_id=&user_id=.
// @Summary Remove um post
// @Description Remove o post; exige papel DOCENTE e posse do post.
// @Tags posts
// @Produce json
// @Param post_id query string true "ID do post (UUID)"
// @Param user_id query string true "ID do ator (UUID)"
// @Success 204 "Post removido"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /posts [delete]
func (h *Handler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	in := domain.DeletePostInput{
		PostID: r.URL.Query().Get("post_id"),
		UserID: r.URL.Query().Get("user_id"),
	}

	if err := h.Service.Delete(r.Context(), in); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}

// FindTeacherPostsHandler lida com a requisição GET /v1/posts/admin.
// @Summary Lista os posts de um docente
// @Description Endpoint de inspeção: verifica apenas que o sujeito consultado é DOCENTE.
// @Tags posts
// @Produce json
// @Param teacher_id query string true "ID do docente (UUID)"
// @Param page query int false "Página (1-based, padrão 1)"
// @Param limit query int false "Itens por página (padrão 10)"
// @Success 200 {array} domain.Post
// @Failure 401 {object} domain.ErrorResponse "Sujeito inexistente ou sem papel DOCENTE"
// @Failure 500 {object} domain.ErrorResponse
// @Router /posts/admin [get]
func (h *Handler) FindTeacherPostsHandler(w http.ResponseWriter, r *http.Request) {
	in := domain.FindTeacherPostsInput{
		TeacherID:  r.URL.Query().Get("teacher_id"),
		Pagination: paginationFromQuery(r),
	}

	posts, err := h.Service.FindTeacherPosts(r.Context(), in)
	h.handleServiceResponse(w, r, posts, err, http.StatusOK)
}

// FindByTextHandler lida com a requisição GET /v1/posts/search?text=.
// @Summary Busca posts por texto
// @Description Substring case-insensitive em título ou descrição; sem resultado retorna lista vazia.
// @Tags posts
// @Produce json
// @Param text query string true "Texto buscado"
// @Success 200 {array} domain.Post
// @Failure 500 {object} domain.ErrorResponse
// @Router /posts/search [get]
func (h *Handler) FindByTextHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.FindByText(r.Context(), r.URL.Query().Get("text"))
	h.handleServiceResponse(w, r, posts, err, http.StatusOK)
}
