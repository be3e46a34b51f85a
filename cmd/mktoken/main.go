// Command mktoken mints a JWT accepted by the API's auth middleware, for
// local development and manual testing. Production tokens come from the
// external identity provider; this tool signs with the configured JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/auth"
)

func main() {
	userID := flag.String("user", "", "subject (user ID) for the token")
	email := flag.String("email", "", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: mktoken -user <id> [-email <addr>] [-ttl <duration>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *email, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
