// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

// flags are the command line flags for the meeting intelligence service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the meeting intelligence
// service.
type environment struct {
	Port    string
	NatsURL string
	Stream  streamEnvConfig
	OpenAI  openAIEnvConfig
	SMTP    smtpEnvConfig
}

// streamEnvConfig holds the call provider credentials.
type streamEnvConfig struct {
	APIKey    string
	APISecret string
}

// openAIEnvConfig holds the LLM provider configuration.
type openAIEnvConfig struct {
	APIKey string
	Model  string
}

// smtpEnvConfig holds the outbound email configuration. An empty host
// disables email delivery.
type smtpEnvConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// parseFlags parses command line flags for the meeting intelligence service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the meeting intelligence service
func parseEnv() environment {
	// A .env file is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.With(logging.ErrKey, err).Warn("error loading .env file")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	streamAPIKey := os.Getenv("STREAM_API_KEY")
	if streamAPIKey == "" {
		slog.Error("STREAM_API_KEY environment variable is required but not set")
		os.Exit(1)
	}

	streamAPISecret := os.Getenv("STREAM_API_SECRET")
	if streamAPISecret == "" {
		slog.Error("STREAM_API_SECRET environment variable is required but not set")
		os.Exit(1)
	}

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		slog.Error("OPENAI_API_KEY environment variable is required but not set")
		os.Exit(1)
	}

	return environment{
		Port:    port,
		NatsURL: natsURL,
		Stream: streamEnvConfig{
			APIKey:    streamAPIKey,
			APISecret: streamAPISecret,
		},
		OpenAI: openAIEnvConfig{
			APIKey: openAIAPIKey,
			Model:  os.Getenv("OPENAI_MODEL"),
		},
		SMTP: parseSMTPConfig(),
	}
}

// parseSMTPConfig parses outbound email configuration from environment
// variables.
func parseSMTPConfig() smtpEnvConfig {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return smtpEnvConfig{}
	}

	port := 587
	if rawPort := os.Getenv("SMTP_PORT"); rawPort != "" {
		parsed, err := strconv.Atoi(rawPort)
		if err != nil {
			slog.With(logging.ErrKey, err, "port", rawPort).Error("invalid SMTP_PORT provided, using default")
		} else {
			port = parsed
		}
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "no-reply@convogenius.io"
	}

	return smtpEnvConfig{
		Host:     host,
		Port:     port,
		From:     from,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}
