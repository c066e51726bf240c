package main

import (
	"context"
	"log"

	"commissary/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present, without overriding the real environment.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(context.Background())
}
