package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"maistorBack/internal/config"
	"maistorBack/internal/handlers"
	"maistorBack/internal/repositories"
	"maistorBack/internal/services"
	"maistorBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger

	db  *sql.DB
	rdb *redis.Client

	tokenManager *utils.Manager

	taskRepo        *repositories.TaskRepository
	applicationRepo *repositories.ApplicationRepository
	categoryRepo    *repositories.CategoryRepository

	taskService      *services.TaskService
	labelService     *services.CategoryLabelService
	translationQueue *services.TranslationQueue

	taskHandler *handlers.TaskHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, errorLog, infoLog *log.Logger) *application {
	tokenManager, err := utils.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		errorLog.Fatal(err)
	}

	// Repositories
	taskRepo := repositories.NewTaskRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	// Services
	labelService := &services.CategoryLabelService{
		Repo:     categoryRepo,
		RDB:      rdb,
		ErrorLog: errorLog,
	}
	translationClient := services.NewTranslationClient(nil, cfg.Translation.BaseURL, cfg.Translation.APIKey)
	translationQueue := services.NewTranslationQueue(translationClient, taskRepo, infoLog, errorLog)
	taskService := services.NewTaskService(taskRepo, labelService, translationQueue)

	// Handlers
	taskHandler := &handlers.TaskHandler{Service: taskService, ErrorLog: errorLog}

	return &application{
		errorLog:         errorLog,
		infoLog:          infoLog,
		db:               db,
		rdb:              rdb,
		tokenManager:     tokenManager,
		taskRepo:         taskRepo,
		applicationRepo:  applicationRepo,
		categoryRepo:     categoryRepo,
		taskService:      taskService,
		labelService:     labelService,
		translationQueue: translationQueue,
		taskHandler:      taskHandler,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	db.SetConnMaxLifetime(time.Hour)
	log.Println("Successfully connected to database")
	return db, nil
}

func openRedis(addr, password string, dbNum int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       dbNum,
	})
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
