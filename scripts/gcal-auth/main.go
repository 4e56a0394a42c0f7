// scripts/gcal-auth/main.go
//
// Run this ONCE locally to authorize Google Calendar access and generate
// token.json for the cached credentials mode.
//
// Usage:
//   go run scripts/gcal-auth/main.go -credentials credentials.json -token token.json
//
// It prints a consent URL, you log in with your Google account, paste the
// authorization code (or the whole redirect URL), and token.json is saved.
// An existing valid or refreshable token is reused without prompting.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"taskcal-bot/internal/credential"
	tokenFile "taskcal-bot/internal/credential/repository/file"
	credentialUC "taskcal-bot/internal/credential/usecase"
	"taskcal-bot/pkg/log"
)

func main() {
	credsPath := flag.String("credentials", "credentials.json", "OAuth client secret (installed-app format)")
	tokenPath := flag.String("token", "token.json", "where to store the token")
	redirectURL := flag.String("redirect-url", "", "override the redirect URL from the client secret")
	flag.Parse()

	ctx := context.Background()
	logger := log.Init(log.ZapConfig{
		Level:    "warn",
		Mode:     log.ModeDebug,
		Encoding: log.EncodingConsole,
	})

	uc := credentialUC.New(logger, tokenFile.New(*tokenPath), credentialUC.Config{
		Mode:             credential.ModeCached,
		ClientSecretPath: *credsPath,
		RedirectURL:      *redirectURL,
	})

	auth, err := uc.Authorize(ctx)
	if err != nil {
		fatal("Failed to authorize: %v", err)
	}
	if auth.Ready() {
		fmt.Printf("%s already holds usable credentials, nothing to do.\n", *tokenPath)
		return
	}

	fmt.Println("=================================================================")
	fmt.Println("STEP 1: Open this URL in a browser and sign in to your Google Account:")
	fmt.Println()
	fmt.Println(auth.Handshake.AuthURL)
	fmt.Println()
	fmt.Println("=================================================================")
	fmt.Print("STEP 2: Paste the authorization code (or the full redirect URL) and press Enter: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		fatal("Failed to read authorization code: %v", scanner.Err())
	}

	ts, err := uc.Complete(ctx, auth.Handshake, strings.TrimSpace(scanner.Text()))
	if err != nil {
		fatal("Failed to exchange authorization code: %v", err)
	}
	if _, err := ts.Token(); err != nil {
		fatal("Token is not usable: %v", err)
	}

	fmt.Println()
	fmt.Printf("token.json saved at: %s\n", *tokenPath)
	fmt.Println("The bot reads this file on the next /task, no restart needed.")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
