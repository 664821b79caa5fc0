package main

import (
	"log"
	"os"

	"burrow/internal/db"
	"burrow/internal/middleware"
	"burrow/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	db.Init()

	r := gin.Default()
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3110"
	}
	log.Printf("burrow server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
