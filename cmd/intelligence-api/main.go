// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package main is the meeting intelligence service: it receives call provider
// webhooks, drives the meeting lifecycle, runs the post-meeting processing
// pipeline over NATS, and answers post-meeting chat messages.
package main

import (
	"context"
	_ "expvar"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/convogenius/meeting-intelligence-service/internal/handlers"
	"github.com/convogenius/meeting-intelligence-service/internal/infrastructure/messaging"
	"github.com/convogenius/meeting-intelligence-service/internal/infrastructure/openai"
	"github.com/convogenius/meeting-intelligence-service/internal/infrastructure/stream"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
	"github.com/convogenius/meeting-intelligence-service/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Initialize email service (independent of NATS)
	emailService, err := setupEmailService(env)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up email service")
		return
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize provider clients
	streamClient := stream.NewClient(stream.Config{
		APIKey:    env.Stream.APIKey,
		APISecret: env.Stream.APISecret,
	})
	webhookValidator := stream.NewWebhookValidator(env.Stream.APISecret)
	agentBridge := stream.NewRealtimeBridge(streamClient, env.OpenAI.APIKey)
	llmClient := openai.NewClient(openai.Config{
		APIKey: env.OpenAI.APIKey,
		Model:  env.OpenAI.Model,
	})

	// Initialize services
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	lifecycleService := service.NewMeetingLifecycleService(
		repos.Meeting,
		repos.Agent,
		streamClient,
		agentBridge,
		messageBuilder,
	)
	chatService := service.NewChatResponderService(
		repos.Meeting,
		repos.Agent,
		streamClient,
		llmClient,
	)
	webhookService := service.NewWebhookService(
		webhookValidator,
		lifecycleService,
		chatService,
	)
	pipelineService := service.NewPipelineService(
		repos.Meeting,
		repos.Agent,
		repos.User,
		repos.PipelineState,
		llmClient,
		emailService,
		nil,
	)

	// Initialize handlers
	pipelineHandler := handlers.NewPipelineHandler(pipelineService)

	api := NewIntelligenceAPI(webhookService, pipelineHandler)

	httpServer := setupHTTPServer(flags, api, &gracefulCloseWG)

	// Create NATS subscriptions for the service.
	err = createNatsSubscriptions(ctx, pipelineHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, &gracefulCloseWG, cancel)
}
