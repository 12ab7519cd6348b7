package main

import (
	"github.com/joho/godotenv"

	"seance-finder-cli/cmd"
)

func main() {
	// Missing .env is fine, the client falls back to the local API.
	_ = godotenv.Load()
	cmd.Execute()
}
