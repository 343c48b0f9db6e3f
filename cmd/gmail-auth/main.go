// Command gmail-auth runs the interactive OAuth authorization flow for an
// account and stores the resulting token under the secrets directory.
//
// Usage:
//
//	gmail-auth -account work [-secrets-dir ~/secrets/google-oauth] [-timeout 5m]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ldraney/gmail-sdk/gmail"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	account := flag.String("account", "", "account name for the stored token (required)")
	secretsDir := flag.String("secrets-dir", "", "directory holding credentials.json and token files")
	timeout := flag.Duration("timeout", 5*time.Minute, "how long to wait for the browser redirect")
	flag.Parse()

	if *account == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	client, err := gmail.Authorize(ctx, gmail.AuthorizeInput{
		Account:    *account,
		SecretsDir: *secretsDir,
		Timeout:    *timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("authorization failed")
	}

	profile, err := client.GetProfile(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("fetching profile")
	}
	log.Info().
		Str("account", *account).
		Str("email", profile.EmailAddress).
		Msg("authorized")
}
