package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvFiles are the dotenv files consulted, in order, before flags are resolved.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFile loads environment variables from the first dotenv file that exists.
// Variables already present in the process environment are not overwritten.
// It returns the file that was loaded.
func LoadEnvFile() (string, error) {
	for _, envPath := range EnvFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return "", fmt.Errorf("load %s: %w", envPath, err)
		}
		return envPath, nil
	}
	return "", fmt.Errorf("no .env file found")
}
