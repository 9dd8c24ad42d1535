package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontovy/kontovy/internal/categories"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "kontovy-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "kontovy")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/kontovy")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runKontovy(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runKontovy(t, "init", dir)
	require.NoError(t, err)

	for _, d := range []string{"rules", "categories", "data", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runKontovy(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "kontovy.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, `delimiter: ";"`)
	assert.Contains(t, contents, "log_level: info")
}

func TestInit_CategoryRegistry(t *testing.T) {
	dir := t.TempDir()
	_, err := runKontovy(t, "init", dir)
	require.NoError(t, err)

	svc, err := categories.Load(filepath.Join(dir, "categories", "registry.csv"))
	require.NoError(t, err)
	assert.True(t, svc.Exists("groceries"))
	assert.True(t, svc.SubcategoryOf("streaming", "entertainment"))
}

func TestInit_EmptyUserRules(t *testing.T) {
	dir := t.TempDir()
	_, err := runKontovy(t, "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "rules", "user-rules.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rules: []\n", string(data))
}
