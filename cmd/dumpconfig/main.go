package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/kmorten/usage_dashboard/backend/internal/config"
)

// dumpconfig prints the resolved configuration with the signing secret
// redacted, for debugging layered env/file setups.
func main() {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	redacted := *cfg
	if redacted.Auth.JWTSecret != "" {
		redacted.Auth.JWTSecret = "[redacted]"
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(redacted); err != nil {
		log.Fatalf("encode config: %v", err)
	}
}
