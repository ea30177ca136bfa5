package infra

import (
	"context"
	"log"

	"github.com/tnqbao/gau-showcase-service/config"
	"github.com/tnqbao/gau-showcase-service/infra/produce"
)

type Infra struct {
	Postgres  *PostgresClient
	Redis     *RedisClient
	Logger    *LoggerClient
	Telemetry *Telemetry
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
	Storage   ObjectStore
	Mailer    *Mailer
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	telemetry, err := InitTelemetry(cfg.EnvConfig)
	if err != nil {
		log.Printf("Warning: telemetry disabled: %v", err)
		telemetry = NewNoopTelemetry()
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	// Redis is optional; nil disables the list cache
	redis := InitRedisClient(cfg.EnvConfig)

	storage := initObjectStore(cfg.EnvConfig)

	var rabbitMQ *RabbitMQClient
	var produceService *produce.Produce
	var publisher ContactPublisher
	if cfg.EnvConfig.Mail.Delivery == "queue" {
		rabbitMQ = InitRabbitMQClient(cfg.EnvConfig)
		if rabbitMQ == nil {
			panic("Failed to initialize RabbitMQ service")
		}
		produceService = produce.InitProduce(rabbitMQ.Channel)
		publisher = produceService.EmailService
	}

	mailer := NewMailer(InitMailRelay(cfg.EnvConfig), publisher, cfg.EnvConfig.Mail.FromAddress, cfg.EnvConfig.Mail.Recipient)

	infraInstance = &Infra{
		Postgres:  postgres,
		Redis:     redis,
		Logger:    logger,
		Telemetry: telemetry,
		RabbitMQ:  rabbitMQ,
		Produce:   produceService,
		Storage:   storage,
		Mailer:    mailer,
	}

	return infraInstance
}

func initObjectStore(cfg *config.EnvConfig) ObjectStore {
	if cfg.Storage.Driver != "minio" {
		return InitS3Client(cfg)
	}

	minio := InitMinioClient(cfg)
	for _, bucket := range []string{cfg.Storage.ImageBucket, cfg.Storage.VideoBucket} {
		if err := minio.EnsureBucket(context.Background(), bucket); err != nil {
			panic("Failed to ensure bucket " + bucket + ": " + err.Error())
		}
	}
	return minio
}

// Shutdown flushes telemetry and closes the broker connection.
func (i *Infra) Shutdown(ctx context.Context) {
	if i.RabbitMQ != nil {
		i.RabbitMQ.Close()
	}
	if err := i.Telemetry.Shutdown(ctx); err != nil {
		log.Printf("Telemetry shutdown error: %v", err)
	}
	if err := i.Logger.Shutdown(ctx); err != nil {
		log.Printf("Logger shutdown error: %v", err)
	}
}
