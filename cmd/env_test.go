package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadespear/outlook-chatgpt-addin/internal/icon"
)

func TestParseCommaSeparatedList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty string", input: "", expected: nil},
		{name: "single value", input: "16", expected: []string{"16"}},
		{name: "multiple values", input: "16,32", expected: []string{"16", "32"}},
		{name: "values with spaces around comma", input: "16, 32", expected: []string{"16", "32"}},
		{name: "trailing comma", input: "16,32,", expected: []string{"16", "32"}},
		{name: "multiple consecutive commas", input: "16,,32", expected: []string{"16", "32"}},
		{name: "only commas and spaces", input: ",  , , ", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommaSeparatedList(tt.input))
		})
	}
}

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes("16, 32,64,80,128")
	require.NoError(t, err)
	assert.Equal(t, icon.DefaultSizes, sizes)

	for _, bad := range []string{"", ",", "abc", "0", "-4", "16,x", "5000"} {
		_, err := parseSizes(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDefaultIconSizes(t *testing.T) {
	assert.Equal(t, "16,32,64,80,128", defaultIconSizes)
}

// unsetForTest removes key for the duration of the test.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadEnvFilesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	unsetForTest(t, "ADDIN_TEST_A")
	unsetForTest(t, "ADDIN_TEST_B")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("ADDIN_TEST_A=local\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ADDIN_TEST_A=shared\nADDIN_TEST_B=shared\n"), 0o644))

	require.NoError(t, loadEnvFiles(""))
	assert.Equal(t, "local", os.Getenv("ADDIN_TEST_A"))
	assert.Equal(t, "shared", os.Getenv("ADDIN_TEST_B"))
}

func TestLoadEnvFilesMissingDefaultsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.NoError(t, loadEnvFiles(""))
}

func TestLoadEnvFilesExplicit(t *testing.T) {
	dir := t.TempDir()
	unsetForTest(t, "ADDIN_TEST_C")

	path := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("ADDIN_TEST_C=custom\n"), 0o644))
	require.NoError(t, loadEnvFiles(path))
	assert.Equal(t, "custom", os.Getenv("ADDIN_TEST_C"))

	err := loadEnvFiles(filepath.Join(dir, "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load env file")
}

func TestLoadEnvFilesKeepsExistingEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ADDIN_TEST_D", "from-shell")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ADDIN_TEST_D=from-file\n"), 0o644))
	require.NoError(t, loadEnvFiles(""))
	assert.Equal(t, "from-shell", os.Getenv("ADDIN_TEST_D"))
}

func TestEnvStringRespectsChangedFlag(t *testing.T) {
	newCmd := func() (*cobra.Command, *string) {
		var v string
		c := &cobra.Command{Use: "x"}
		c.Flags().StringVar(&v, "out", "assets", "")
		return c, &v
	}
	t.Setenv("ICON_OUT_DIR", "from-env")

	c, v := newCmd()
	require.NoError(t, c.ParseFlags(nil))
	envString(c, "out", "ICON_OUT_DIR", v)
	assert.Equal(t, "from-env", *v)

	c, v = newCmd()
	require.NoError(t, c.ParseFlags([]string{"--out", "from-flag"}))
	envString(c, "out", "ICON_OUT_DIR", v)
	assert.Equal(t, "from-flag", *v)
}

func TestEnvBool(t *testing.T) {
	var enabled bool
	c := &cobra.Command{Use: "x"}
	c.Flags().BoolVar(&enabled, "metrics-enabled", false, "")
	require.NoError(t, c.ParseFlags(nil))

	t.Setenv("METRICS_ENABLED", "not-a-bool")
	envBool(c, "metrics-enabled", "METRICS_ENABLED", &enabled)
	assert.False(t, enabled)

	t.Setenv("METRICS_ENABLED", "true")
	envBool(c, "metrics-enabled", "METRICS_ENABLED", &enabled)
	assert.True(t, enabled)
}

func TestStyleFlags(t *testing.T) {
	f := styleFlags{text: "AI", background: "#000000", foreground: "ffffff"}
	st, err := f.style()
	require.NoError(t, err)
	assert.Equal(t, icon.Style{Background: icon.RGB(0, 0, 0), Foreground: icon.RGB(255, 255, 255), Text: "AI"}, st)

	f.background = "green"
	_, err = f.style()
	assert.ErrorIs(t, err, icon.ErrInvalidColor)
}
