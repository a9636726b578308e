package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BeanieMen/Wikichu/internal/cache"
	"github.com/BeanieMen/Wikichu/internal/catalog"
	"github.com/BeanieMen/Wikichu/internal/config"
	"github.com/BeanieMen/Wikichu/internal/domain"
	"github.com/BeanieMen/Wikichu/internal/handler"
	"github.com/BeanieMen/Wikichu/internal/handler/mw"
	"github.com/BeanieMen/Wikichu/internal/repository"
	"github.com/BeanieMen/Wikichu/internal/server"
	"github.com/BeanieMen/Wikichu/internal/usecase"
)

type seedableRepo interface {
	usecase.Repository
	SeedCatalog(ctx context.Context, stickers []domain.Sticker) error
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var repo seedableRepo
	if cfg.DBDriver == "sqlite" {
		repo, err = repository.NewSQLiteRepo(cfg.SQLitePath)
	} else {
		repo, err = repository.NewPostgresRepo(cfg.DSN())
	}
	if err != nil {
		log.Fatalf("failed to init repository: %v", err)
	}

	pool := catalog.Default(rand.NewSource(time.Now().UnixNano()))
	if err := repo.SeedCatalog(context.Background(), pool.Stickers()); err != nil {
		log.Fatalf("failed to seed sticker catalog: %v", err)
	}

	var idem usecase.IdempotencyCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to ping redis: %v", err)
		}
		idem = cache.NewRedisCache(rdb)
	}

	mw.SetSecretKey([]byte(cfg.AuthSecret))

	svc := usecase.NewService(repo, pool, idem)
	h := handler.NewHandler(svc)
	r := server.NewRouter(h)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	server.StartHTTPServer(srv)
}
