package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vik9386/backend/internal/config"
	"github.com/vik9386/backend/internal/db"
	"github.com/vik9386/backend/internal/handler"
	"github.com/vik9386/backend/internal/repository"
	"github.com/vik9386/backend/internal/router"
	"github.com/vik9386/backend/internal/service"
	"github.com/vik9386/backend/internal/uploader"

	"github.com/gin-gonic/gin"
)

func main() {
	configDir := flag.String("config", "config", "configuration directory")
	flag.Parse()

	config.InitConfig(*configDir)
	db.InitDB()

	tempPath := config.Get().Upload.TempPath
	if err := os.MkdirAll(tempPath, 0755); err != nil {
		log.Fatal("❌ cannot create upload temp directory: ", err)
	}

	mediaUploader, err := uploader.NewS3Uploader(config.Get().Media)
	if err != nil {
		log.Fatal("❌ media storage setup failed: ", err)
	}

	repos := repository.NewRepositories(
		repository.NewUserRepository(db.DB),
		repository.NewSubscriptionRepository(db.DB),
	)
	appService := service.New(repos, mediaUploader)
	appHandler := handler.NewHandler(appService)

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	router.NewRouter(appHandler).Init(r)

	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 server listening on :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ server failed: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ forced shutdown: ", err)
	}

	if err := service.CloseRedisClient(); err != nil {
		log.Printf("⚠️  %v", err)
	}

	log.Println("✅ server exited")
}
