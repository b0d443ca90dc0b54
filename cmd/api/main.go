package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/internal/handlers"
	"github.com/devconnect/devconnect-api/internal/services"
	"github.com/devconnect/devconnect-api/internal/store"
	"github.com/devconnect/devconnect-api/internal/token"
)

const tokenTTL = 10 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDatabase)
	log.Println("Successfully connected to MongoDB!")

	userStore := store.NewMongoUserStore(db)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	profileStore := store.NewMongoProfileStore(db)
	postStore := store.NewMongoPostStore(db)

	tokens := token.New(cfg.JWTSecret, tokenTTL)
	github := services.NewGithubService(cfg.GithubAPIURL, cfg.GithubClientID, cfg.GithubClientSecret)

	h := handlers.NewHandler(userStore, profileStore, postStore, tokens, github)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "x-auth-token"},
		AllowCredentials: true,
	}))

	handlers.RegisterRoutes(r, h, tokens)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
