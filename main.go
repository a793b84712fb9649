package main

import (
	"github.com/joho/godotenv"

	"github.com/reppo-ai/reppo-cli/cmd"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()
	cmd.Execute()
}
