// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "openai-api-key"), []byte("sk-test-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crossref-email"), []byte("  dev@example.org  "), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("   \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("ignored"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", secrets["openai-api-key"])
	assert.Equal(t, "dev@example.org", secrets["crossref-email"])

	_, ok := secrets["empty-key"]
	assert.False(t, ok, "empty secrets should be skipped")
	_, ok = secrets[".hidden"]
	assert.False(t, ok, "dotfiles should be skipped")
	_, ok = secrets["subdir"]
	assert.False(t, ok, "directories should be skipped")
}

func TestLoad_MissingDirectory(t *testing.T) {
	secrets, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestResolve(t *testing.T) {
	secrets := map[string]string{"openai-api-key": "sk-from-file"}

	t.Run("env wins", func(t *testing.T) {
		t.Setenv("IDEA_ENGINE_TEST_KEY", "sk-from-env")
		assert.Equal(t, "sk-from-env", Resolve(secrets, "openai-api-key", "IDEA_ENGINE_TEST_KEY", "fallback"))
	})

	t.Run("secret when env empty", func(t *testing.T) {
		t.Setenv("IDEA_ENGINE_TEST_KEY", "")
		assert.Equal(t, "sk-from-file", Resolve(secrets, "openai-api-key", "IDEA_ENGINE_TEST_KEY", "fallback"))
	})

	t.Run("whitespace env is empty", func(t *testing.T) {
		t.Setenv("IDEA_ENGINE_TEST_KEY", "   ")
		assert.Equal(t, "sk-from-file", Resolve(secrets, "openai-api-key", "IDEA_ENGINE_TEST_KEY", "fallback"))
	})

	t.Run("fallback when nothing set", func(t *testing.T) {
		t.Setenv("IDEA_ENGINE_TEST_KEY", "")
		assert.Equal(t, "fallback", Resolve(nil, "missing", "IDEA_ENGINE_TEST_KEY", "fallback"))
	})
}
