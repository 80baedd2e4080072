package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/abhisek/lingiz/cmd"
)

func main() {
	// Optional .env in the working directory, mainly for API keys.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
