package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/yungbote/tripcraft-backend/internal/platform/envutil"
	"github.com/yungbote/tripcraft-backend/internal/services"
)

// devtoken prints a bearer token for local API calls.
func main() {
	var (
		user string
		ttl  time.Duration
	)
	flag.StringVar(&user, "user", "", "user id (uuid); random when empty")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := envutil.String("JWT_SECRET_KEY", "")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET_KEY is not set")
		os.Exit(1)
	}

	userID := uuid.New()
	if user != "" {
		id, err := uuid.Parse(user)
		if err != nil || id == uuid.Nil {
			fmt.Fprintf(os.Stderr, "invalid -user %q\n", user)
			os.Exit(2)
		}
		userID = id
	}

	token, err := services.SignToken(secret, userID, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
