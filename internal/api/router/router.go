package router

import (
	"net/http"
	"strings"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"edupost/internal/api/auth"
	"edupost/internal/api/post"
	"edupost/internal/api/user"
	"edupost/internal/pkg/cache"
	"edupost/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
// Usamos o ServeMux padrão do net/http; o despacho por método fica explícito
// em cada rota.
func NewRouter(
	postHandler *post.Handler,
	userHandler *user.Handler,
	authHandler *auth.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	rateLimit int,
	ratePeriod time.Duration,
) http.Handler {

	mux := http.NewServeMux()
	authGuard := middleware.NewAuthMiddleware(tokenSvc)

	// --- Health Check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- Documentação (Swagger UI) ---
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// --- Autenticação ---
	mux.HandleFunc("/v1/login", authHandler.LoginHandler)

	// --- Módulo de Usuários ---
	mux.HandleFunc("/v1/users", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			userHandler.CreateUserHandler(w, r)
		case http.MethodGet:
			userHandler.FindAllHandler(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	// Rotas de item: o id vem do sufixo do caminho. As mutações de usuário
	// exigem um token Bearer válido; a leitura é pública.
	mux.HandleFunc("/v1/users/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/v1/users/")
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			userHandler.FindOneHandler(w, r, id)
		case http.MethodPut:
			authGuard(func(w http.ResponseWriter, r *http.Request) {
				userHandler.UpdateUserHandler(w, r, id)
			})(w, r)
		case http.MethodDelete:
			authGuard(func(w http.ResponseWriter, r *http.Request) {
				userHandler.DeleteUserHandler(w, r, id)
			})(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	// --- Módulo de Posts ---
	// A autorização dos posts é feita em banda pelo próprio serviço
	// (papel e posse do ator), não por middleware.
	mux.HandleFunc("/v1/posts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			postHandler.CreatePostHandler(w, r)
		case http.MethodGet:
			postHandler.FindAllHandler(w, r)
		case http.MethodPut:
			postHandler.UpdatePostHandler(w, r)
		case http.MethodDelete:
			postHandler.DeletePostHandler(w, r)
		default:
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/v1/posts/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
			return
		}

		suffix := strings.TrimPrefix(r.URL.Path, "/v1/posts/")
		switch suffix {
		case "admin":
			postHandler.FindTeacherPostsHandler(w, r)
		case "search":
			postHandler.FindByTextHandler(w, r)
		default:
			if suffix == "" || strings.Contains(suffix, "/") {
				http.NotFound(w, r)
				return
			}
			postHandler.FindOneHandler(w, r, suffix)
		}
	})

	// --- Middlewares Globais ---
	return middleware.RateLimiter(cacheClient, rateLimit, ratePeriod)(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
