package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/postpilot/postpilot/api"
	"github.com/postpilot/postpilot/cmd"
	"github.com/postpilot/postpilot/logger"
	"github.com/postpilot/postpilot/settings"
	"github.com/postpilot/postpilot/storage"
	"github.com/postpilot/postpilot/utils"
	_ "github.com/joho/godotenv/autoload"
)

var log = logger.New("main")

func dbPath() string {
	if path := os.Getenv("POSTPILOT_DB"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "postpilot.db"
	}
	return filepath.Join(home, ".postpilot", "postpilot.db")
}

func main() {
	versionInfo, err := utils.ReadVersionInfo()
	if err != nil {
		log.Warn().Err(err).Msg("could not read build info")
	} else {
		log.Debug().Msgf("postpilot-%s, %v", versionInfo.Revision, versionInfo.LastCommit)
	}

	path := dbPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.Fatal().Err(err).Send()
	}

	db, err := storage.Open(path)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Send()
	}

	n, err := db.Migrate()
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if n > 0 {
		log.Info().Msgf("Applied %d migration(s)", n)
	}

	settingsService := settings.NewService(db.Settings)

	var rateLimit float64
	if value := os.Getenv("API_RATE_LIMIT"); value != "" {
		rateLimit, err = strconv.ParseFloat(value, 64)
		if err != nil {
			log.Warn().Str("value", value).Msg("invalid API_RATE_LIMIT, ignoring")
			rateLimit = 0
		}
	}

	client := api.NewClient(settingsService, settingsService, &api.Options{
		RateLimit: rateLimit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx, &cmd.App{Settings: settingsService, Client: client}); err != nil {
		log.Error().Err(err).Send()
		os.Exit(1)
	}
}
