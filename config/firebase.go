package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// InitFirebase initializes the Firebase Admin SDK from the configured
// credentials. Returns nil without error when no credentials are set, in
// which case the local identity provider takes over.
func InitFirebase(cfg *Config) (*firebase.App, error) {
	if cfg.FirebaseCredsBase64 == "" && cfg.FirebaseCredsFile == "" {
		return nil, nil
	}

	ctx := context.Background()
	fbConfig := &firebase.Config{ProjectID: cfg.FirebaseProjectID}

	var opt option.ClientOption
	if cfg.FirebaseCredsBase64 != "" {
		log.Println("Using Firebase credentials from base64 environment variable")
		decoded, err := base64.StdEncoding.DecodeString(cfg.FirebaseCredsBase64)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 credentials: %w", err)
		}
		opt = option.WithCredentialsJSON(decoded)
	} else {
		log.Printf("Using Firebase credentials file: %s", cfg.FirebaseCredsFile)
		opt = option.WithCredentialsFile(cfg.FirebaseCredsFile)
	}

	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	return app, nil
}
