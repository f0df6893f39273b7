// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"caseflow/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseAuthClient returns a Firebase Auth client when a service account is
// configured, or nil when Firebase sign-in is disabled.
func FirebaseAuthClient(ctx context.Context) (*auth.Client, error) {
	if config.AppConfig.FirebaseCredentialsFile == "" {
		return nil, nil
	}
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	return client, nil
}
