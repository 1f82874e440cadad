// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
)

// KeyDisplayName is the display name of the API key looked up through ADC.
const KeyDisplayName = "CFS Regions Geocoding Key"

// ReadAPIKey reads the key stored in path, without its trailing newline.
func ReadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s not found", ErrMissingKey, path)
		}

		return "", fmt.Errorf("reading API key: %w", err)
	}

	key := strings.TrimRightFunc(string(data), unicode.IsSpace)
	if key == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrMissingKey, path)
	}

	return key, nil
}

// APIKeyFromADC finds the project from Application Default Credentials and
// retrieves the secret of the key named KeyDisplayName.
func APIKeyFromADC(ctx context.Context) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("finding default credentials: %w", err)
	}

	if creds.ProjectID == "" {
		return "", fmt.Errorf("%w: no project in default credentials", ErrMissingKey)
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating apikeys client: %w", err)
	}
	defer client.Close()

	it := client.ListKeys(ctx, &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", creds.ProjectID),
	})

	for {
		key, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("listing keys: %w", err)
		}

		if key.GetDisplayName() != KeyDisplayName {
			continue
		}

		// ListKeys redacts the secret.
		log.Printf("Found key resource '%s', retrieving secret...", key.GetName())

		resp, err := client.GetKeyString(ctx, &apikeyspb.GetKeyStringRequest{Name: key.GetName()})
		if err != nil {
			return "", fmt.Errorf("getting key string: %w", err)
		}

		if resp.GetKeyString() == "" {
			return "", fmt.Errorf("%w: key '%s' has an empty secret", ErrMissingKey, KeyDisplayName)
		}

		return resp.GetKeyString(), nil
	}

	return "", fmt.Errorf("%w: no key named '%s' in project %s", ErrMissingKey, KeyDisplayName, creds.ProjectID)
}
