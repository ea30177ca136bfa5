package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-showcase-service/config"
	"github.com/tnqbao/gau-showcase-service/entity"
	"github.com/tnqbao/gau-showcase-service/http/controller"
	routes "github.com/tnqbao/gau-showcase-service/http/route"
	infraPkg "github.com/tnqbao/gau-showcase-service/infra"
	"github.com/tnqbao/gau-showcase-service/repository"
	"github.com/tnqbao/gau-showcase-service/utils"
)

func main() {
	err := godotenv.Load("staging.env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra, cfg.EnvConfig.Redis.CacheTTL)

	bootstrapAdmin(cfg.EnvConfig, infra, repo)

	ctrl := controller.NewController(cfg, infra, repo)

	router := routes.SetupRouter(ctrl)

	server := &http.Server{
		Addr:              ":" + cfg.EnvConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP Server started on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	infra.Logger.InfoWithContextf(ctx, "Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "Server forced to shutdown: %v", err)
	}
	infra.Shutdown(ctx)
	log.Println("Server exited properly")
}

// bootstrapAdmin creates the first admin from the environment so the
// protected addAdmin route is reachable on a fresh database.
func bootstrapAdmin(cfg *config.EnvConfig, infra *infraPkg.Infra, repo *repository.Repository) {
	ctx := context.Background()
	if cfg.Admin.BootstrapEmail == "" || cfg.Admin.BootstrapPassword == "" {
		return
	}

	count, err := repo.AdminRepo.Count(ctx)
	if err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "[Admin] Failed to count admins: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hashed, err := utils.HashPassword(cfg.Admin.BootstrapPassword)
	if err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "[Admin] Failed to hash bootstrap password: %v", err)
		return
	}

	admin := &entity.Admin{
		Name:     cfg.Admin.BootstrapName,
		Email:    cfg.Admin.BootstrapEmail,
		Password: hashed,
	}
	if err := repo.AdminRepo.Create(ctx, admin); err != nil {
		infra.Logger.ErrorWithContextf(ctx, err, "[Admin] Failed to create bootstrap admin: %v", err)
		return
	}
	infra.Logger.InfoWithContextf(ctx, "[Admin] Created bootstrap admin %s", admin.ID)
}
