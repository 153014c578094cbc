package initializers

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls configuration from a local .env file. Deployed
// environments set real environment variables instead.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("could not load .env file: %w", err)
	}
	log.Println("Env loaded successfully")
	return nil
}
