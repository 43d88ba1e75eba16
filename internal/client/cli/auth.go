package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login prompts for an auth token (pasted without echo) and saves it to the
// configured token file. Subsequent authenticated commands pick it up via
// the token provider, which also honors the NEWSDESK_TOKEN environment
// variable.
func (a *App) Login(ctx context.Context) error {
	token, err := getSecret(os.Stdout, "Paste auth token")
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("empty token")
	}

	if err := a.tokens.Save(token); err != nil {
		log.Printf("error saving token: %v", err)
		return err
	}

	fmt.Println("Success!")
	return nil
}

// Logout removes the saved token file. A token provided via the environment
// is outside this client's control and stays in effect.
func (a *App) Logout(ctx context.Context) error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
