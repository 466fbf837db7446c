package main

import (
	"context"
	"log"
	"net/http"

	"onboarding/config"
	"onboarding/handlers"
	"onboarding/middleware"
	"onboarding/services"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	client, database, bucket := config.InitializeMongo(cfg)
	defer client.Disconnect(context.Background())

	store := services.NewMongoStore(database)
	if err := store.EnsureIndexes(context.Background()); err != nil {
		log.Fatal(err)
	}
	storage := services.NewGridFSStorage(bucket, cfg.BaseURL)
	pipeline := services.NewPipeline(store, storage)

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)

	handlers.RegisterRoutes(r, pipeline, store)
	r.HandleFunc("/files/{name:.+}", handlers.FileHandler(bucket)).Methods("GET")

	corsHandler := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)(r)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
