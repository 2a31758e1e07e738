// Command checkenv verifies the deployment environment before startup.
// Exits non-zero when any required variable is missing, so it can gate a
// deploy pipeline.
package main

import (
	"fmt"
	"os"

	"talento_backend/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	missing := config.MissingRequired()

	fmt.Println("Environment check")
	for _, key := range config.RequiredEnv {
		status := "ok"
		if os.Getenv(key) == "" {
			status = "MISSING"
		}
		fmt.Printf("  [required] %-22s %s\n", key, status)
	}
	for _, key := range config.OptionalEnv {
		status := "ok"
		if os.Getenv(key) == "" {
			status = "unset"
		}
		fmt.Printf("  [optional] %-22s %s\n", key, status)
	}

	if len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "\nmissing required variables: %v\n", missing)
		os.Exit(1)
	}
	fmt.Println("\nall required variables present")
}
