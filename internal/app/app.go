package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micromart/orders/internal/dal/clients/catalog"
	"github.com/micromart/orders/internal/dal/clients/paymentsvc"
	"github.com/micromart/orders/internal/dal/postgres"
	"github.com/micromart/orders/internal/dal/rabbitmq"
	outboxrepo "github.com/micromart/orders/internal/dal/repositories/outbox/postgres"
	"github.com/micromart/orders/internal/otel"
	"github.com/micromart/orders/internal/service/services/ordersvc"
	"github.com/micromart/orders/internal/transport/consumer"
	httptransport "github.com/micromart/orders/internal/transport/http"
	outboxworker "github.com/micromart/orders/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	paidConsumer   *consumer.Consumer
	outboxWorker   *outboxworker.Worker
	rpc            *rabbitmq.RPC
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	rpc, err := rabbitmq.NewRPC(rabbitMqClient)
	if err != nil {
		panic(err)
	}

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithCatalogClient(catalog.NewClient(rpc)),
		ordersvc.WithPaymentClient(paymentsvc.NewClient(rpc)),
	)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	paidConsumer := consumer.NewConsumer(rabbitMqClient, orderSvc)

	outboxRepository := outboxrepo.NewPostgresOutboxRepository(postgresClient.Pool())
	outboxWorker := outboxworker.NewWorker(outboxRepository, rabbitMqClient)

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		paidConsumer:   paidConsumer,
		outboxWorker:   outboxWorker,
		rpc:            rpc,
		rabbitMqClient: rabbitMqClient,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting payment confirmation consumer")
		if err := a.paidConsumer.Run(ctx); err != nil {
			slog.Error("Consumer error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown shuts down components sequentially: HTTP server, outbox
// worker, consumer, RabbitMQ, PostgreSQL, and OpenTelemetry.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.outboxWorker.Stop()
	slog.Info("Outbox worker stopped gracefully")

	if err := a.paidConsumer.Shutdown(); err != nil {
		slog.Error("Consumer shutdown error", "error", err)
	} else {
		slog.Info("Consumer stopped gracefully")
	}

	if err := a.rpc.Close(); err != nil {
		slog.Error("RPC channel close error", "error", err)
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
