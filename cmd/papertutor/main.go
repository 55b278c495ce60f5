package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"papertutor/internal/config"
	"papertutor/internal/embedding"
	"papertutor/internal/generator"
	"papertutor/internal/session"
	"papertutor/internal/tui"
)

const logFilePath = "./papertutor.log"

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "./configs/config.yaml", "Path to the YAML config file")
	filePath := flag.String("file", "", "Document to load before the chat starts")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Logs go to a file so they don't tear the TUI frames.
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logFile, TimeFormat: time.RFC3339, NoColor: true}).With().Caller().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")

	// The embedding model client is built exactly once and shared; every
	// encode call goes through this instance.
	embedder, err := embedding.New(&cfg.Embedding)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	gen := generator.NewClient(&cfg.Generation)
	sess := session.New(embedder, gen, cfg)

	var status string
	if *filePath != "" {
		n, err := sess.Load(context.Background(), *filePath)
		if err != nil {
			log.Error().Err(err).Str("file", *filePath).Msg("Error loading document")
			status = "Could not load " + *filePath + ": " + err.Error()
		} else {
			status = fmt.Sprintf("Indexed %q (%d chunks). Ask away.", sess.DocumentName(), n)
		}
	}

	m := tui.New(sess, status)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal().Err(err).Msg("TUI crashed")
	}
}
