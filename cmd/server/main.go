package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/quizforge/backend/internal/credentials"
	"github.com/quizforge/backend/internal/database"
	"github.com/quizforge/backend/internal/exchange"
	"github.com/quizforge/backend/internal/history"
	"github.com/quizforge/backend/internal/middleware"
	"github.com/quizforge/backend/internal/quiz"
	"github.com/rs/cors"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	setupLogging()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize stores and services
	credStore := credentials.NewStore(db)
	historyStore := history.NewStore(db)

	gateway := exchange.NewGateway(exchange.DefaultRegistry())
	quizService := quiz.NewService(gateway, credStore, historyStore)

	quizHandler := quiz.NewHandler(quizService)
	credHandler := credentials.NewHandler(credStore)
	historyHandler := history.NewHandler(historyStore)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	api := r.PathPrefix("/api/v1").Subrouter()
	quizHandler.RegisterRoutes(api)
	credHandler.RegisterRoutes(api)
	historyHandler.RegisterRoutes(api)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// setupLogging sends log output to stdout and a rotating file.
func setupLogging() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Printf("Failed to create log directory, logging to stdout only: %v", err)
		return
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "server.log"),
		MaxSize:    20, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotating))
}
