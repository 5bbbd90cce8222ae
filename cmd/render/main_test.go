package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.html")

	err := writePage(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "<html></html>")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestWritePage_RenderErrorRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.html")
	renderErr := errors.New("template exploded")

	err := writePage(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "<html><body>")
		return renderErr
	})
	require.ErrorIs(t, err, renderErr)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial page should be removed")
}

func TestWritePage_CreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "map.html")

	err := writePage(path, func(io.Writer) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output")
}
