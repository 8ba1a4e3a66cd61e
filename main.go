package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bananagame/go-server/internal/config"
	"github.com/bananagame/go-server/internal/httpserver"
	"github.com/bananagame/go-server/internal/question"
	"github.com/bananagame/go-server/internal/session"
	"github.com/bananagame/go-server/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	srv := httpserver.New(
		cfg,
		store.New(db),
		session.NewStore(),
		question.NewClient(cfg.QuestionAPIURL, cfg.QuestionTimeout),
	)

	log.Info().Str("addr", cfg.Addr).Msg("starting bananagame server")
	if err := srv.Start(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
