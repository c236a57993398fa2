package main

import (
	"fmt"
	"os"

	"github.com/bloomwell/bloom-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	a.Log.Info("Server listening", "port", port)
	if err := a.Router.Run(":" + port); err != nil {
		a.Log.Error("Server failed", "error", err)
	}
}
