// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kaggle

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	envUsername = "KAGGLE_USERNAME"
	envKey      = "KAGGLE_KEY"

	secretUsername = "kaggle-username"
	secretKey      = "kaggle-key"
)

// ResolveCredentials builds the credential pair from, in precedence order:
// the secrets map (loaded from .secrets/), process environment variables,
// and a .env file at envPath. It never prompts; an empty pair is returned
// when no source has the values, and the caller decides whether that is
// fatal.
func ResolveCredentials(secrets map[string]string, envPath string) Credentials {
	creds := Credentials{
		Username: secrets[secretUsername],
		Key:      secrets[secretKey],
	}
	if creds.Valid() {
		return creds
	}

	if creds.Username == "" {
		creds.Username = os.Getenv(envUsername)
	}
	if creds.Key == "" {
		creds.Key = os.Getenv(envKey)
	}
	if creds.Valid() {
		return creds
	}

	// Fall back to a .env file without mutating the process environment.
	if envPath != "" {
		if vars, err := godotenv.Read(envPath); err == nil {
			if creds.Username == "" {
				creds.Username = vars[envUsername]
			}
			if creds.Key == "" {
				creds.Key = vars[envKey]
			}
		}
	}
	return creds
}
