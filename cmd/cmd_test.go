package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs don't leak into
// each other through the package-level commands.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	t.Setenv("LECTORA_DB", "")
	return filepath.Join(dir, "lectora.db")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lectora (devel)\n", out)
}

func TestUserLifecycle(t *testing.T) {
	db := testEnv(t)

	out, err := execute(t, "user", "add", "Ana@Example.com", "--password", "clave1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Created ana@example.com (student).")

	out, err = execute(t, "user", "add", "admin@example.com", "--role", "admin", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "not be shown again")

	_, err = execute(t, "user", "add", "ana@example.com", "--db", db)
	assert.Error(t, err)

	_, err = execute(t, "user", "add", "bob@example.com", "--role", "owner", "--db", db)
	assert.Error(t, err)

	out, err = execute(t, "user", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "admin@example.com")
	assert.Contains(t, out, "admin")

	out, err = execute(t, "user", "passwd", "ana@example.com", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "New password for ana@example.com")

	out, err = execute(t, "user", "delete", "ana@example.com", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted ana@example.com.")

	_, err = execute(t, "user", "delete", "ana@example.com", "--db", db)
	assert.Error(t, err)
}

func TestImportProgressAndReport(t *testing.T) {
	db := testEnv(t)
	csvPath := filepath.Join(t.TempDir(), "progreso.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"Usuario,Nivel,Puntaje\n"+
			"ana@example.com,Básico,3\n"+
			"ana@example.com,Básico,5\n"+
			"ben@example.com,Avanzado,9\n"), 0o600))

	out, err := execute(t, "import", "progress", csvPath, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 row(s).")
	assert.Contains(t, out, "skipped line 4")

	out, err = execute(t, "progress", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "3/5")
	assert.Contains(t, out, "5/5")

	out, err = execute(t, "progress", "--summary", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "4.0")

	out, err = execute(t, "progress", "--csv", "--email", "ben@example.com", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "email,level,score,total,created_at\n", out)
}

func TestImportMissingFile(t *testing.T) {
	db := testEnv(t)
	_, err := execute(t, "import", "users", filepath.Join(t.TempDir(), "nope.csv"), "--db", db)
	assert.Error(t, err)
}

func TestLLMCommandsOnEmptyStore(t *testing.T) {
	db := testEnv(t)

	out, err := execute(t, "llm", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	out, err = execute(t, "llm", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	_, err = execute(t, "llm", "view", "42", "--db", db)
	assert.ErrorContains(t, err, "event 42 not found")

	_, err = execute(t, "llm", "view", "abc", "--db", db)
	assert.ErrorContains(t, err, "invalid ID")
}

func TestConfigInitAndShow(t *testing.T) {
	db := testEnv(t)
	path := filepath.Join(t.TempDir(), "lectora.yaml")

	out, err := execute(t, "config", "init", "--config", path, "--lang", "en")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, "config", "show", "--config", path, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "language:     en")
	assert.Contains(t, out, "database:     "+db)
	assert.Contains(t, out, "jwt_secret:   ********")
}

func TestUnsupportedLanguage(t *testing.T) {
	db := testEnv(t)
	_, err := execute(t, "serve", "--lang", "fr", "--db", db, "--addr", "127.0.0.1:0")
	assert.ErrorContains(t, err, "unsupported language")
}
