package main

import (
	"fmt"
	"os"

	"push-to-memory/config"
	"push-to-memory/pkg/scope"
)

// Mints an owner token signed with auth.jwt_secret for local testing of the /api/v1 routes.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/dev-token/main.go <user-id>")
		fmt.Println("Example: go run scripts/dev-token/main.go user-123")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	token, err := scope.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).CreateToken(os.Args[1])
	if err != nil {
		fmt.Printf("Failed to create token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
