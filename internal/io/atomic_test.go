package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteJSONAtomic_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	require.NoError(t, WriteJSONAtomic(path, payload{Name: "openai", Count: 3}))

	var got payload
	require.NoError(t, ReadJSON(path, &got))
	assert.Equal(t, payload{Name: "openai", Count: 3}, got)

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must not survive the rename")
}

func TestWriteJSONAtomic_Indented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSONAtomic(path, payload{Name: "x"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"name\"")
}

func TestReadJSON_MissingFile(t *testing.T) {
	var got payload
	err := ReadJSON(filepath.Join(t.TempDir(), "nope.json"), &got)
	assert.Error(t, err)
}
