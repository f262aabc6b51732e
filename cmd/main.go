package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"edupost/config"
	"edupost/internal/pkg/cache"
	"edupost/internal/pkg/database"
	"edupost/internal/pkg/logger"
	"edupost/internal/pkg/token"

	"edupost/internal/api/auth"
	"edupost/internal/api/post"
	"edupost/internal/api/router"
	"edupost/internal/api/user"
	"edupost/internal/repository/postrepo"
	"edupost/internal/repository/userrepo"
	"edupost/internal/service/authservice"
	"edupost/internal/service/postservice"
	"edupost/internal/service/userservice"
)

func main() {
	// 1. Variáveis de Ambiente (.env)
	// Se o arquivo .env não existir, seguimos: as variáveis essenciais podem
	// estar no ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("Aviso: arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis)
	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		log.Fatal("Falha ao conectar ao Redis.", err)
	}
	log.Info("Conexão Redis estabelecida.", nil)

	// C. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// 3. Injeção de Dependências (Repository -> Service -> Handler)

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	postRepo := postrepo.NewPostRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)

	userSvc := userservice.NewService(userRepo, log)
	postSvc := postservice.NewService(postRepo, userRepo, log)
	authSvc := authservice.NewService(userRepo, log)

	userHandler := user.NewHandler(userSvc, log)
	postHandler := post.NewHandler(postSvc, log)
	authHandler := auth.NewHandler(authSvc, tokenSvc, log)
	log.Debug("Camadas de domínio inicializadas.", nil)

	// 4. Roteador e Servidor HTTP
	r := router.NewRouter(
		postHandler,
		userHandler,
		authHandler,
		tokenSvc,
		cacheClient,
		cfg.RateLimitMaxRequests,
		cfg.RateLimitPeriod,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor EduPost ouvindo.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
