package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/maynagashev/cinecatalog/internal/handlers"
	"github.com/maynagashev/cinecatalog/internal/logger"
	appmiddleware "github.com/maynagashev/cinecatalog/internal/middleware"
	"github.com/maynagashev/cinecatalog/internal/repository"
	"github.com/maynagashev/cinecatalog/internal/services"
	"github.com/maynagashev/cinecatalog/internal/tmdb"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second

	bannerMessage = "Movie catalog API is up and running"
)

// newPostgresDB подменяется в тестах.
var newPostgresDB = repository.NewPostgresDB

// repositories - хранилища, от которых зависят сервисы.
type repositories struct {
	users     repository.UserRepository
	favorites repository.FavoriteRepository
	ratings   repository.RatingRepository
	lists     repository.ListRepository
}

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	db     *sqlx.DB
	tokens *services.TokenManager

	authHandler     *handlers.AuthHandler
	favoriteHandler *handlers.FavoriteHandler
	ratingHandler   *handlers.RatingHandler
	listHandler     *handlers.ListHandler
	userHandler     *handlers.UserHandler
	movieHandler    *handlers.MovieHandler
}

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.WithError(err).Error("Ошибка выполнения сервера")
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	cfg, err := parseFlags()
	if err != nil {
		return fmt.Errorf("ошибка конфигурации: %w", err)
	}
	if err = logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("ошибка настройки логгера: %w", err)
	}

	log.Info("Запуск сервера каталога фильмов...")

	deps, err := setupDependencies(cfg)
	if err != nil {
		return fmt.Errorf("ошибка инициализации зависимостей: %w", err)
	}
	defer func() {
		if closeErr := deps.db.Close(); closeErr != nil {
			log.WithError(closeErr).Error("Ошибка закрытия соединения с БД")
		}
	}()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      setupRouter(deps, cfg.CORSOrigins),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, server, cfg)
}

// serve запускает сервер и останавливает его по отмене ctx, дожидаясь активных запросов.
func serve(ctx context.Context, server *http.Server, cfg *config) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if cfg.TLSEnabled() {
			log.WithFields(log.Fields{"port": cfg.Port, "cert": cfg.CertFile}).Info("Запуск HTTPS-сервера")
			err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			log.WithField("port", cfg.Port).Info("Запуск HTTP-сервера")
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка запуска сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Получен сигнал остановки, завершаем активные запросы...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	log.Info("Сервер остановлен")
	return nil
}

// setupDependencies подключается к БД и собирает зависимости сервера.
func setupDependencies(cfg *config) (*dependencies, error) {
	db, err := newPostgresDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации БД: %w", err)
	}

	tokens, err := services.NewTokenManager(services.TokenConfig{
		Secret: cfg.JWTSecret,
		TTL:    cfg.JWTTTL,
	})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.WithError(closeErr).Error("Ошибка закрытия соединения с БД")
		}
		return nil, fmt.Errorf("ошибка инициализации токенов: %w", err)
	}

	repos := repositories{
		users:     repository.NewPostgresUserRepository(db),
		favorites: repository.NewPostgresFavoriteRepository(db),
		ratings:   repository.NewPostgresRatingRepository(db),
		lists:     repository.NewPostgresListRepository(db),
	}

	deps := buildDependencies(repos, tokens, services.NewPasswordHasher(cfg.BcryptCost), tmdb.NewClient(cfg.TMDB))
	deps.db = db
	return deps, nil
}

// buildDependencies создает сервисы и обработчики поверх переданных хранилищ.
func buildDependencies(
	repos repositories,
	tokens *services.TokenManager,
	hasher *services.PasswordHasher,
	catalog handlers.MovieCatalog,
) *dependencies {
	authService := services.NewAuthService(repos.users, hasher, tokens)
	userService := services.NewUserService(repos.users)
	favoriteService := services.NewFavoriteService(repos.favorites)
	ratingService := services.NewRatingService(repos.ratings)
	listService := services.NewListService(repos.lists)

	return &dependencies{
		tokens:          tokens,
		authHandler:     handlers.NewAuthHandler(authService),
		favoriteHandler: handlers.NewFavoriteHandler(favoriteService),
		ratingHandler:   handlers.NewRatingHandler(ratingService),
		listHandler:     handlers.NewListHandler(listService),
		userHandler:     handlers.NewUserHandler(userService, favoriteService, ratingService, listService),
		movieHandler:    handlers.NewMovieHandler(catalog),
	}
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(deps *dependencies, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.CORS(corsOrigins))
	r.Use(appmiddleware.Metrics)

	// Должны быть заданы до Route, чтобы подроутеры их унаследовали
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// --- Служебные маршруты --- //
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"` + bannerMessage + `"}`))
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Публичные маршруты
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.authHandler.Register)
			r.Post("/login", deps.authHandler.Login)
		})
		r.Route("/movies", func(r chi.Router) {
			r.Get("/trending", deps.movieHandler.Trending)
			r.Get("/popular", deps.movieHandler.Popular)
			r.Get("/tv/recommended", deps.movieHandler.RecommendedTV)
			r.Get("/search", deps.movieHandler.Search)
			r.Get("/{id}", deps.movieHandler.Details)
		})

		// Приватные маршруты (требуют аутентификации)
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Authenticator(deps.tokens))

			r.Route("/favorites", func(r chi.Router) {
				r.Post("/add", deps.favoriteHandler.Add)
				r.Delete("/remove/{movie_id}", deps.favoriteHandler.Remove)
				r.Get("/check/{movie_id}", deps.favoriteHandler.Check)
			})
			r.Route("/ratings", func(r chi.Router) {
				r.Post("/set", deps.ratingHandler.Set)
				r.Get("/get/{movie_id}", deps.ratingHandler.Get)
				r.Delete("/remove/{movie_id}", deps.ratingHandler.Remove)
			})
			r.Route("/lists", func(r chi.Router) {
				r.Post("/create", deps.listHandler.Create)
				r.Get("/my-lists", deps.listHandler.MyLists)
				r.Get("/{list_id}/items", deps.listHandler.Items)
				r.Post("/add-item", deps.listHandler.AddItem)
				r.Delete("/remove-item/{item_id}", deps.listHandler.RemoveItem)
				r.Delete("/{list_id}", deps.listHandler.Delete)
			})
			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", deps.userHandler.Profile)
				r.Get("/favorites", deps.userHandler.Favorites)
				r.Get("/ratings", deps.userHandler.Ratings)
				r.Get("/lists", deps.userHandler.Lists)
				r.Get("/stats", deps.userHandler.Stats)
			})
		})
	})
	return r
}
