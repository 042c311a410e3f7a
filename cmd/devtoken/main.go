// Command devtoken prints a signed bearer token for calling the dashboard
// API locally.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/contractor-dashboard/internal/platform/auth"
)

func main() {
	_ = godotenv.Load()
	subject := flag.String("sub", "demo-contractor", "viewer id placed in the sub claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET not set; cannot sign a token")
	}
	verifier := auth.NewVerifier(secret, strings.TrimSpace(os.Getenv("AUTH_JWT_ISSUER")))
	token, err := verifier.Issue(*subject, *ttl)
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(token)
}
