package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kmorten/usage_dashboard/backend/internal/auth"
	"github.com/kmorten/usage_dashboard/backend/internal/config"
)

// tokengen mints a bearer credential from the configured signing secret so
// operators can exercise the API without a frontend login.
func main() {
	subject := flag.String("subject", "", "subject id for the credential (required)")
	name := flag.String("name", "", "display name (defaults to the subject id)")
	roles := flag.String("roles", "user", "comma-separated role list")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	flag.Parse()

	if strings.TrimSpace(*subject) == "" {
		log.Fatal("subject is required")
	}

	cfg, err := config.Load(config.Options{})
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	tokenTTL := cfg.Auth.TokenTTL
	if *ttl > 0 {
		tokenTTL = *ttl
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, tokenTTL, cfg.Auth.Issuer)
	if err != nil {
		log.Fatalf("init token manager: %v", err)
	}

	displayName := strings.TrimSpace(*name)
	if displayName == "" {
		displayName = strings.TrimSpace(*subject)
	}

	roleList := make([]string, 0)
	for _, role := range strings.Split(*roles, ",") {
		if trimmed := strings.TrimSpace(role); trimmed != "" {
			roleList = append(roleList, trimmed)
		}
	}

	token, expiresAt, err := tokens.Generate(strings.TrimSpace(*subject), displayName, roleList)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Println(token)
	log.Printf("expires %s", expiresAt.UTC().Format(time.RFC3339))
}
