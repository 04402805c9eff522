package main

import (
	"log"
	"net/http"

	"taxi_orders/internal/config"
	"taxi_orders/internal/logger"
	"taxi_orders/internal/middleware"
	"taxi_orders/internal/routes"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	// Connect to the database and migrate
	config.InitDB()

	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
