package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/anchoredit/cmd/anchoredit/opts"
	"github.com/walteh/anchoredit/pkg/operation"
)

const testPlan = `
backup: true
files:
  - name: constants
    glob: "*.go"
    edits:
      - label: greeting
        before: [""]
        target: |
          const greeting = "hi"
        replacement: |
          const greeting = "hello"
`

const testSource = "package main\n\nconst greeting = \"hi\"\n"

func setupTree(t *testing.T, plan string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anchoredit.yaml"), []byte(plan), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(testSource), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&opts.RootOpts{Out: &out, Err: &errOut})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd(&opts.RootOpts{})
	assert.Equal(t, "anchoredit", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	names := []string{}
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"apply", "locate", "restore", "version"})

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
	assert.Equal(t, "anchoredit.yaml", flag.DefValue)
}

func TestApplyCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     string
		contains []string
	}{
		{
			name:     "writes_changes",
			want:     "package main\n\nconst greeting = \"hello\"\n",
			contains: []string{"main.go"},
		},
		{
			name:     "dry_run_with_diff",
			args:     []string{"--dry-run", "--diff"},
			want:     testSource,
			contains: []string{"--- a/main.go", "+++ b/main.go", "-const greeting = \"hi\"", "+const greeting = \"hello\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupTree(t, testPlan)

			args := append([]string{"apply", "-c", filepath.Join(dir, "anchoredit.yaml")}, tt.args...)
			out, _, err := execute(t, args...)
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}

			got, err := os.ReadFile(filepath.Join(dir, "main.go"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyCommand_AmbiguousTarget(t *testing.T) {
	dir := setupTree(t, testPlan)
	source := "package main\n\nconst greeting = \"hi\"\n\nconst greeting = \"hi\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(source), 0o644))

	_, _, err := execute(t, "apply", "-c", filepath.Join(dir, "anchoredit.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	got, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, source, string(got), "a failed file is left untouched")
}

func TestLocateCommand(t *testing.T) {
	dir := setupTree(t, testPlan)

	out, _, err := execute(t, "locate", "-c", filepath.Join(dir, "anchoredit.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "main.go:3-3 greeting")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	_, _, err = execute(t, "locate", "-c", filepath.Join(dir, "anchoredit.yaml"))
	require.ErrorIs(t, err, operation.ErrUnlocated)
}

func TestRestoreCommand(t *testing.T) {
	dir := setupTree(t, testPlan)
	plan := filepath.Join(dir, "anchoredit.yaml")

	_, _, err := execute(t, "apply", "-c", plan)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "main.go.bak"))

	_, _, err = execute(t, "restore", "-c", plan)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, testSource, string(got))
	assert.NoFileExists(t, filepath.Join(dir, "main.go.bak"))
}

func TestMissingPlan(t *testing.T) {
	_, _, err := execute(t, "apply", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading plan")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "🚀 anchoredit version info:")
	assert.Contains(t, out, "Go:")
}

func TestFormatVersion(t *testing.T) {
	got := FormatVersion(&VersionInfo{
		Version:   "v1.2.3",
		GoVersion: "go1.23.5",
		Platform:  "linux/amd64",
		Revision:  "abc123",
		Time:      "2025-01-01T00:00:00Z",
		Modified:  true,
	})
	assert.Contains(t, got, "Version:   v1.2.3")
	assert.Contains(t, got, "Revision:  abc123 (modified)")
	assert.Contains(t, got, "Platform:  linux/amd64")
}
