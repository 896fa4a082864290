// Command token mints an operator access token for the back-office routes.
package main

import (
	"flag"
	"fmt"
	"log"

	"user-admission/internal/config"
	"user-admission/internal/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "operator", "token subject (operator name)")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to OPERATOR_TOKEN_TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	lifetime := cfg.JWT.AccessTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := jwt.GenerateAccessToken(*subject, jwt.RoleOperator, cfg.JWT.Secret, lifetime)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
