// @title AI Course Backend API
// @version 1.0
// @description Backend for the AI-assisted learning platform: guest sessions, generated courses, assessments and tutor chat.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"ai_course_backend/internal/app"
	"ai_course_backend/internal/config"
	"ai_course_backend/pkg/logger"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
