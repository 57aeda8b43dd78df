package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"

	"github.com/VadimK2/usergraph/graph"
	"github.com/VadimK2/usergraph/internal/config"
	"github.com/VadimK2/usergraph/internal/post"
	"github.com/VadimK2/usergraph/internal/storage/memory"
	"github.com/VadimK2/usergraph/internal/storage/postgres"
	"github.com/VadimK2/usergraph/internal/user"
)

func main() {
	storageType := flag.String("storage", "postgres", "storage backend: postgres or memory")
	flag.Parse()

	config.LoadEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	var userStore user.UserStorage
	var postStore post.PostStorage
	ping := func() error { return nil }

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		if err := postgres.Migrate(); err != nil {
			logger.Fatal("database migration failed", zap.Error(err))
		}

		logger.Info("using PostgreSQL storage")
		userStore = postgres.NewUserPostgresStorage()
		postStore = postgres.NewPostPostgresStorage()
		ping = func() error { return postgres.GetDB().DB().Ping() }

	case "memory":
		logger.Info("using in-memory storage")
		users := memory.NewUserMemoryStorage()
		userStore = users
		postStore = memory.NewPostMemoryStorage(users)

	default:
		logger.Fatal("unknown storage type", zap.String("storage", *storageType))
	}

	resolver := graph.NewResolver(userStore, postStore, logger)
	schema := graphql.MustParseSchema(graph.Schema, resolver, graphql.UseFieldResolvers())

	mux := http.NewServeMux()
	mux.Handle("/graphql", &relay.Handler{Schema: schema})
	mux.HandleFunc("/health", healthHandler(ping))
	mux.HandleFunc("/", graphiqlHandler)

	port := config.GetEnvDefault("PORT", "5000")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		logger.Info("server started", zap.String("addr", "http://localhost:"+port+"/"))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Fatal("shutdown failed", zap.Error(err))
	}

	if *storageType == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			logger.Error("closing database", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}

// healthHandler reports whether the backing store is reachable.
func healthHandler(ping func() error) http.HandlerFunc {
	type health struct {
		Status    string `json:"status"`
		Database  string `json:"database"`
		Timestamp string `json:"timestamp"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		body := health{
			Status:    "OK",
			Database:  "connected",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		code := http.StatusOK

		if err := ping(); err != nil {
			body.Status = "ERROR"
			body.Database = "disconnected"
			code = http.StatusInternalServerError
		}

		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	}
}
