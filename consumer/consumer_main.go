package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-showcase-service/config"
	"github.com/tnqbao/gau-showcase-service/consumer/worker"
	infraPkg "github.com/tnqbao/gau-showcase-service/infra"
)

func main() {
	err := godotenv.Load("../staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	if cfg.EnvConfig.Mail.Delivery != "queue" {
		log.Fatalf("The email consumer requires MAIL_DELIVERY=queue, got %q", cfg.EnvConfig.Mail.Delivery)
	}
	infra := infraPkg.InitInfra(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emailConsumer := worker.NewEmailConsumer(infra.RabbitMQ.Channel, infra.Mailer, infra.Logger)
	if err := emailConsumer.Start(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Failed to start Email consumer: %v", err)
		log.Fatalf("Failed to start Email consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.InfoWithContextf(ctx, "Shutting down consumer...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	infra.Shutdown(shutdownCtx)

	log.Println("Consumer exited properly")
}
