package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/SumukhPhulari10/apptbot/internal/logger"
	"github.com/SumukhPhulari10/apptbot/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment variables")
	}

	logger.InitStderr()

	cfg, err := server.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	if !cfg.EmailEnabled() {
		logger.Warn("email is not configured, confirmations and reminders will skip email")
	}
	if !cfg.SMSEnabled() {
		logger.Warn("sms is not configured, confirmations and reminders will skip sms")
	}
	if !cfg.LLMEnabled() {
		logger.Warn("message extraction is not configured, parse requests will fall back to the form")
	}

	handler := server.NewHandler(cfg)
	defer handler.Registry().Stop()

	router := server.SetupRoutes(handler)

	logger.Info("starting notification server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
