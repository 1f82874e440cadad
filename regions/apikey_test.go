// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"trailing newline", "AIzaSyExample\n", "AIzaSyExample"},
		{"windows newline", "AIzaSyExample\r\n", "AIzaSyExample"},
		{"no newline", "AIzaSyExample", "AIzaSyExample"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "key.txt")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			key, err := ReadAPIKey(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, key)
		})
	}
}

func TestReadAPIKeyMissing(t *testing.T) {
	_, err := ReadAPIKey(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestReadAPIKeyEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := ReadAPIKey(path)
	require.ErrorIs(t, err, ErrMissingKey)
}
