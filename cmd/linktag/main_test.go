package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Run("no arguments shows help and errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()

		err := m.Run(context.Background(), nil, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no input specified")
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("help flag succeeds", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()

		err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("missing api key errors with hint", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		var stdout, stderr bytes.Buffer
		m := NewMain()

		err := m.Run(context.Background(), []string{"urls.txt", "--mode", "full"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY not set")
		assert.Contains(t, stderr.String(), "aistudio.google.com/apikey")
	})

	t.Run("abort mode needs no credentials", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		var stdout, stderr bytes.Buffer
		m := NewMain()

		err := m.Run(context.Background(), []string{"urls.txt", "--mode", "abort"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Aborted.")
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()

		err := m.Run(context.Background(), []string{"urls.txt", "--mode", "sideways"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "--mode")
	})
}
