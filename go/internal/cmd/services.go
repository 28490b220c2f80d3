package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mcdev12/draftroom/go/internal/catalog"
	"github.com/mcdev12/draftroom/go/internal/draft/gateway"
	"github.com/mcdev12/draftroom/go/internal/draft/ledger"
	"github.com/mcdev12/draftroom/go/internal/draft/outbox"
	"github.com/mcdev12/draftroom/go/internal/room"
)

type Services struct {
	Rooms   *room.App
	Catalog *catalog.App
	Ledger  *ledger.App
	Gateway *gateway.Service

	ConnManager *gateway.ConnectionManager
	WSHandler   *gateway.WebSocketHandler

	// Postgres mode only; nil otherwise.
	OutboxListener *outbox.Listener
	EventConsumer  *gateway.EventConsumer
}

// setupServices wires the dependency chain for the configured store mode.
//
// Memory mode keeps everything in-process: mutations broadcast directly to
// the WebSocket connection manager. Postgres mode writes events through the
// transactional outbox; a LISTEN/NOTIFY relay publishes them to JetStream
// and the gateway consumer feeds them back into the connection manager.
func setupServices(ctx context.Context, config *Config, database *sql.DB) (*Services, error) {
	connManager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())

	switch config.Store.Mode {
	case storeModeMemory:
		return setupMemoryServices(connManager)
	case storeModePostgres:
		return setupPostgresServices(ctx, config, database, connManager)
	default:
		return nil, fmt.Errorf("unknown store mode %q", config.Store.Mode)
	}
}

func setupMemoryServices(connManager *gateway.ConnectionManager) (*Services, error) {
	ledgerRepo := ledger.NewMemoryRepository()
	roomApp := room.NewApp(room.NewMemoryRepository())
	catalogApp := catalog.NewApp(catalog.NewMemoryRepository(), ledgerRepo)

	sink := gateway.NewDirectSink(connManager)
	ledgerApp := ledger.NewApp(ledgerRepo, roomApp, catalogApp, sink)

	return &Services{
		Rooms:       roomApp,
		Catalog:     catalogApp,
		Ledger:      ledgerApp,
		Gateway:     gateway.NewService(roomApp, catalogApp, ledgerApp),
		ConnManager: connManager,
		WSHandler:   gateway.NewWebSocketHandler(connManager),
	}, nil
}

func setupPostgresServices(ctx context.Context, config *Config, database *sql.DB, connManager *gateway.ConnectionManager) (*Services, error) {
	listenerCfg := outbox.DefaultListenerConfig()
	listenerCfg.DatabaseURL = databaseConfigFromEnv().DSN()

	ledgerRepo := ledger.NewPostgresRepository(database)
	roomApp := room.NewApp(room.NewPostgresRepository(database))
	catalogApp := catalog.NewApp(catalog.NewPostgresRepository(database), ledgerRepo)

	outboxApp := outbox.NewApp(outbox.NewRepository(database, listenerCfg.NotifyChannel))
	ledgerApp := ledger.NewApp(ledgerRepo, roomApp, catalogApp, outbox.NewSink(outboxApp))

	services := &Services{
		Rooms:       roomApp,
		Catalog:     catalogApp,
		Ledger:      ledgerApp,
		Gateway:     gateway.NewService(roomApp, catalogApp, ledgerApp),
		ConnManager: connManager,
		WSHandler:   gateway.NewWebSocketHandler(connManager),
	}

	var publisher outbox.Publisher
	if config.Nats.Enabled {
		publisherCfg := outbox.DefaultJetStreamPublisherConfig()
		publisherCfg.URL = config.Nats.URL

		jsPublisher, err := outbox.NewJetStreamPublisher(ctx, publisherCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create JetStream publisher: %w", err)
		}
		publisher = jsPublisher

		consumerCfg := gateway.DefaultJetStreamConsumerConfig()
		consumerCfg.URL = config.Nats.URL

		consumer, err := gateway.NewEventConsumer(connManager, consumerCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create event consumer: %w", err)
		}
		services.EventConsumer = consumer
	} else {
		publisher = outbox.NewLogPublisher()
	}

	listener, err := outbox.NewListener(outboxApp, publisher, listenerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox listener: %w", err)
	}
	services.OutboxListener = listener

	return services, nil
}
