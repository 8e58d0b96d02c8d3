package main

import (
	"github.com/joho/godotenv"

	"github.com/captain-stacks/nutrition-gpt/cmd/nutrition"
)

func main() {
	// Optional .env with API keys; absence is fine.
	_ = godotenv.Load()
	nutrition.Execute()
}
