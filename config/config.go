package config

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Config holds the service configuration, read from the environment with an
// optional .env file.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string
	// BaseURL is the public prefix stored-file links are built from.
	BaseURL string
}

// Load reads the configuration. Missing variables fall back to the defaults
// the service has always run with.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	return Config{
		Port:     getenv("PORT", "5000"),
		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "onboarding"),
		BaseURL:  getenv("BASE_URL", "http://localhost:5000"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitializeMongo connects to MongoDB and prepares the database handle and
// the GridFS bucket uploaded documents are stored in.
func InitializeMongo(cfg Config) (*mongo.Client, *mongo.Database, *gridfs.Bucket) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatal(err)
	}

	database := client.Database(cfg.MongoDB)

	bucket, err := gridfs.NewBucket(database, options.GridFSBucket().SetName("documents"))
	if err != nil {
		log.Fatal(err)
	}

	return client, database, bucket
}
