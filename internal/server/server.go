package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/engine"
	"taskboard/internal/handler"
	"taskboard/internal/persist"
	"taskboard/internal/storage"
)

type Server struct {
	Engine *gin.Engine
	Config *config.Config
	Logger *log.Logger

	core *engine.Engine
}

func Init(cfg *config.Config) (*Server, error) {
	logger := log.New()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	chain := buildChain(cfg, logger)
	if len(chain) == 0 {
		// The board must stay usable even with no durable storage.
		logger.Warn("no storage backend available, running in-memory only")
		chain = []storage.Backend{storage.NewMemoryBackend()}
	}

	pipe := persist.New(chain, time.Duration(cfg.DebounceMs)*time.Millisecond, persist.RealClock(), logger)

	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	initial := pipe.Load(loadCtx)

	store := board.NewStore(initial, time.Now)
	core := engine.New(store, pipe, logger)
	boardHandler := handler.NewBoardHandler(core)

	r := gin.Default()

	r.GET("/board", boardHandler.GetBoard)
	r.POST("/columns/:id/tasks", boardHandler.AddTask)
	r.PUT("/tasks/:id", boardHandler.EditTask)
	r.DELETE("/tasks/:id", boardHandler.DeleteTask)
	r.POST("/drag/start", boardHandler.DragStart)
	r.POST("/drag/move", boardHandler.DragMove)
	r.POST("/drag/end", boardHandler.DragEnd)
	r.GET("/save-status", boardHandler.SaveStatus)

	return &Server{
		Engine: r,
		Config: cfg,
		Logger: logger,
		core:   core,
	}, nil
}

// buildChain constructs the configured backends in order. A backend whose
// infrastructure is unreachable at boot is skipped with a warning, never
// fatal: the rest of the chain still serves.
func buildChain(cfg *config.Config, logger *log.Logger) []storage.Backend {
	var chain []storage.Backend
	for _, name := range cfg.BackendChain {
		switch name {
		case "postgres":
			dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
			)
			db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
			if err != nil {
				logger.WithError(err).Warn("postgres unreachable, skipping backend")
				continue
			}
			backend := storage.NewPostgresBackend(db)
			if err := backend.Migrate(); err != nil {
				logger.WithError(err).Warn("postgres migration failed, skipping backend")
				continue
			}
			logger.Info("✅ postgres backend ready")
			chain = append(chain, backend)
		case "redis":
			client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := client.Ping(pingCtx).Err()
			cancel()
			if err != nil {
				logger.WithError(err).Warn("redis unreachable, skipping backend")
				_ = client.Close()
				continue
			}
			logger.Info("✅ redis backend ready")
			chain = append(chain, storage.NewRedisBackend(client, cfg.RedisKey))
		case "file":
			logger.WithField("path", cfg.BoardFile).Info("✅ file backend ready")
			chain = append(chain, storage.NewFileBackend(cfg.BoardFile))
		case "memory":
			chain = append(chain, storage.NewMemoryBackend())
		default:
			logger.WithField("backend", name).Warn("unknown backend in chain, skipping")
		}
	}
	return chain
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	// Flush any pending debounced save before exiting.
	s.core.Close()

	s.Logger.Info("✅ Server exited properly")
}
