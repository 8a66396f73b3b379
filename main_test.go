package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billlayne/mailcomposer/calendar"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/store"
)

// setup points every writable path of the default settings into a temp dir
// and returns a runner for the root command.
func setup(t *testing.T) (dir string, run func(stdin string, args ...string) (string, error)) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("COMPOSER_STORE", "file")
	t.Setenv("COMPOSER_STORE_PATH", filepath.Join(dir, "data"))
	t.Setenv("COMPOSER_LOG_FILE", filepath.Join(dir, "composer.log"))
	t.Setenv("COMPOSER_OUTPUT_DIR", filepath.Join(dir, "out"))
	cfg := filepath.Join(dir, "composer.yaml")
	// Flag variables outlive a single Execute.
	formPath, exportPath, listName = "", "", ""

	run = func(stdin string, args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetIn(strings.NewReader(stdin))
		rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
		err := rootCmd.ExecuteContext(context.Background())
		return out.String(), err
	}
	return dir, run
}

func TestLoadForm(t *testing.T) {
	d, err := loadForm("")
	require.NoError(t, err)
	assert.Equal(t, form.Defaults(), d)

	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte("documentType: Receipt\npolicyHolder: Jane Doe\n"), 0o644))
	d, err = loadForm(path)
	require.NoError(t, err)
	assert.Equal(t, form.Receipt, d.DocumentType)
	assert.Equal(t, "Jane Doe", d.PolicyHolder)
	assert.Equal(t, form.Defaults().Tone, d.Tone)

	require.NoError(t, os.WriteFile(path, []byte("policyHolder: [unclosed"), 0o644))
	_, err = loadForm(path)
	assert.ErrorContains(t, err, "parse form")

	_, err = loadForm(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read form")
}

func TestListsCommands(t *testing.T) {
	dir, run := setup(t)

	out, err := run("", "lists", "create", "Spring Renewals")
	require.NoError(t, err)
	assert.Contains(t, out, `Created "Spring Renewals"`)

	out, err = run("jane@example.com, Jane, Jane Doe\nnot-an-email\nbob@example.com, Bob\n", "lists", "add", "spring renewals")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 of 2 recipient(s)")

	out, err = run("jane@example.com, Jane\n", "lists", "add", "Spring Renewals", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 0 of 1 recipient(s)")

	out, err = run("", "lists")
	require.NoError(t, err)
	assert.Contains(t, out, "Spring Renewals")
	assert.Contains(t, out, "RECIPIENTS")

	out, err = run("", "lists", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported")
	assert.FileExists(t, filepath.Join(dir, "out", store.ListsExportFile))

	_, err = run("", "lists", "add", "Nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTemplatesCommands(t *testing.T) {
	dir, run := setup(t)

	out, err := run("", "templates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "default-auto-docs")

	out, err = run("", "templates", "show", "default-auto-docs")
	require.NoError(t, err)
	assert.Contains(t, out, "documentType: Auto Documentation")

	backup := filepath.Join(dir, "templates.json")
	out, err = run("", "templates", "export", "-o", backup)
	require.NoError(t, err)
	assert.Contains(t, out, backup)
	assert.FileExists(t, backup)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nope":true}`), 0o644))
	_, err = run("", "templates", "import", bad)
	assert.ErrorIs(t, err, store.ErrInvalidImport)
}

func TestICSCommand(t *testing.T) {
	dir, run := setup(t)
	path := filepath.Join(dir, "renewal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`documentType: Policy Renewal
policyHolder: Jane Doe
renewalDue: "2025-06-01T10:00"
includeIcs: "yes"
`), 0o644))

	out, err := run("", "ics", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, calendar.Filename)

	b, err := os.ReadFile(filepath.Join(dir, "out", calendar.Filename))
	require.NoError(t, err)
	assert.Contains(t, string(b), "BEGIN:VCALENDAR")
	assert.Contains(t, string(b), "Policy Renewal: Jane Doe")
}
