package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config holds everything a handler needs: the shared Mongo client and the
// secrets loaded once at startup.
type Config struct {
	MongoClient     *mongo.Client
	DBName          string
	JWTSecret       string
	StripeSecretKey string
	Port            string
}

// Load reads the environment and connects to MongoDB. Required variables
// missing at startup are a fatal error.
func Load() *Config {
	cfg := &Config{
		DBName:          getEnv("DB_NAME", "MediCamp"),
		JWTSecret:       os.Getenv("SECRET_KEY"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		Port:            getEnv("PORT", "5000"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("SECRET_KEY environment variable is not set")
	}
	if cfg.StripeSecretKey == "" {
		log.Println("STRIPE_SECRET_KEY not set, payment intents will fail")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Fatal("MONGODB_URI environment variable is not set")
	}

	client, err := connectMongo(uri)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	cfg.MongoClient = client

	return cfg
}

func connectMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
