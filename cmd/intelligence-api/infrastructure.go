// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/domain/models"
	"github.com/convogenius/meeting-intelligence-service/internal/infrastructure/email"
	"github.com/convogenius/meeting-intelligence-service/internal/infrastructure/messaging"
	"github.com/convogenius/meeting-intelligence-service/internal/infrastructure/store"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
)

// Timeouts for infrastructure setup and teardown.
const (
	natsConnectTimeout   = 10 * time.Second
	natsShutdownTimeout  = 25 * time.Second
	httpShutdownTimeout  = 25 * time.Second
	kvStoreCreateTimeout = 30 * time.Second
)

// storeRepositories groups the NATS KV backed repositories.
type storeRepositories struct {
	Meeting       *store.NatsMeetingRepository
	Agent         *store.NatsAgentRepository
	User          *store.NatsUserRepository
	PipelineState *store.NatsPipelineStateRepository
}

// setupNATS establishes the NATS connection used for both messaging and the
// key-value stores. The connection's closed handler signals shutdown so a
// dropped connection terminates the process rather than leaving it serving
// requests it cannot complete.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	gracefulCloseWG.Add(1)

	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(natsShutdownTimeout),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection established", "nats_url", env.NatsURL)
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.ErrorContext(ctx, "async NATS error inside subscription",
					logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue)
				return
			}
			slog.ErrorContext(ctx, "async NATS error", logging.ErrKey, err)
		}),
		nats.ClosedHandler(func(conn *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed", logging.ErrKey, conn.LastError())
			gracefulCloseWG.Done()
			done <- os.Interrupt
		}),
		nats.Timeout(natsConnectTimeout),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, err
	}

	return natsConn, nil
}

// getKeyValueStores ensures the service's KV buckets exist and wraps them in
// repositories.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*storeRepositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, kvStoreCreateTimeout)
	defer cancel()

	buckets := make(map[string]jetstream.KeyValue, 4)
	for _, bucket := range []string{
		store.KVStoreNameMeetings,
		store.KVStoreNameAgents,
		store.KVStoreNameUsers,
		store.KVStoreNamePipelineRuns,
	} {
		kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: bucket})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create or bind key-value bucket",
				logging.ErrKey, err, "bucket", bucket)
			return nil, err
		}
		buckets[bucket] = kv
	}

	return &storeRepositories{
		Meeting:       store.NewNatsMeetingRepository(buckets[store.KVStoreNameMeetings]),
		Agent:         store.NewNatsAgentRepository(buckets[store.KVStoreNameAgents]),
		User:          store.NewNatsUserRepository(buckets[store.KVStoreNameUsers]),
		PipelineState: store.NewNatsPipelineStateRepository(buckets[store.KVStoreNamePipelineRuns]),
	}, nil
}

// setupEmailService selects the email backend: SMTP when configured, a no-op
// otherwise.
func setupEmailService(env environment) (domain.EmailService, error) {
	if env.SMTP.Host == "" {
		slog.Info("SMTP not configured, email notifications are disabled")
		return email.NewNoOpService(), nil
	}

	return email.NewSMTPService(email.SMTPConfig{
		Host:     env.SMTP.Host,
		Port:     env.SMTP.Port,
		From:     env.SMTP.From,
		Username: env.SMTP.Username,
		Password: env.SMTP.Password,
	})
}

// createNatsSubscriptions subscribes the pipeline handler to the meeting
// processing subject. The queue group ensures a job is delivered to one
// instance only.
func createNatsSubscriptions(ctx context.Context, handler domain.MessageHandler, natsConn *nats.Conn) error {
	subject := models.MeetingProcessingSubject
	_, err := natsConn.QueueSubscribe(subject, models.MeetingProcessingQueue, func(msg *nats.Msg) {
		handler.HandleMessage(ctx, messaging.NewNatsMsg(msg))
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "subscribed to NATS subject", "subject", subject, "queue", models.MeetingProcessingQueue)

	return nil
}

// gracefulShutdown drains in-flight work before exit: stop accepting HTTP
// requests, drain the NATS subscriptions, then wait for the close handlers.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("http server shutdown error")
	}
	gracefulCloseWG.Done()

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
	}

	cancel()
	gracefulCloseWG.Wait()
}
