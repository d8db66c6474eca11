package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// tempConfig returns a config path inside a fresh temp dir and isolates the
// data dir and env overrides.
func tempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SRCDSRM_DATA_DIR", dir)
	t.Setenv("SRCDSRM_APPINFO", "")
	t.Setenv("SRCDSRM_PLATFORM", "")
	t.Setenv("SRCDSRM_LOG_LEVEL", "")
	return filepath.Join(dir, "srcdsrm.conf")
}

func writeConfig(t *testing.T, path string, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name         string
		setupContent string
		wantLines    []string
	}{
		{
			name:         "single line",
			setupContent: "key=value\n",
			wantLines:    []string{"key=value"},
		},
		{
			name:         "multiple lines",
			setupContent: "key1=value1\nkey2=value2\nkey3=value3\n",
			wantLines:    []string{"key1=value1", "key2=value2", "key3=value3"},
		},
		{
			name:         "lines with comments",
			setupContent: "# Comment\nkey=value\n",
			wantLines:    []string{"# Comment", "key=value"},
		},
		{
			name:         "Windows CRLF line endings",
			setupContent: "key1=value1\r\nkey2=value2\r\n",
			wantLines:    []string{"key1=value1", "key2=value2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempConfig(t)
			require.NoError(t, os.WriteFile(path, []byte(tt.setupContent), 0644))

			got, err := ReadLines(path)
			require.NoError(t, err)
			require.Equal(t, tt.wantLines, got)

			info, err := os.Stat(path)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0600), info.Mode().Perm())
		})
	}
}

func TestReadLines_SeedsNewFile(t *testing.T) {
	path := tempConfig(t)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	require.NotEmpty(t, lines)
	require.Equal(t, "# srcdsrm configuration", lines[0])

	cfg, err := Parse(lines)
	require.NoError(t, err)
	require.Equal(t, "2", cfg["rate_limit"])
	require.Equal(t, "less -FRSX", cfg["pager"])
	require.NotContains(t, cfg, "user_agent", "hidden keys are not seeded")
	require.NotContains(t, cfg, "target_dir", "optional keys are commented out")
	require.Contains(t, lines, "# target_dir=")

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, strings.Join(lines, "\n")+"\n", string(written))
}

func TestReadLines_CreatesParentDir(t *testing.T) {
	path := filepath.Join(tempConfig(t), "..", "nested", "deeper", "srcdsrm.conf")

	_, err := ReadLines(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWriteLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "empty lines", lines: []string{}},
		{name: "single line", lines: []string{"key=value"}},
		{name: "multiple lines", lines: []string{"key1=value1", "key2=value2", "key3=value3"}},
		{name: "lines with comments", lines: []string{"# Comment", "key=value", "# Another comment"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempConfig(t)

			require.NoError(t, WriteLines(path, tt.lines))

			content, err := os.ReadFile(path)
			require.NoError(t, err)

			expected := ""
			for _, line := range tt.lines {
				expected += line + "\n"
			}
			require.Equal(t, expected, string(content))

			info, err := os.Stat(path)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0600), info.Mode().Perm())
		})
	}
}

func TestWriteLines_OverwritesAndLeavesNoTemp(t *testing.T) {
	path := tempConfig(t)

	require.NoError(t, WriteLines(path, []string{"key1=value1", "key2=value2"}))
	require.NoError(t, WriteLines(path, []string{"key3=value3"}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "key3=value3\n", string(content))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		require.NotContains(t, e.Name(), ".tmp.")
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name         string
		initialLines []string
		key          string
		value        string
		wantLines    []string
		wantUpdated  bool
	}{
		{
			name:         "add to empty",
			initialLines: []string{},
			key:          "key",
			value:        "value",
			wantLines:    []string{"key=value"},
		},
		{
			name:         "add new key",
			initialLines: []string{"key1=value1"},
			key:          "key2",
			value:        "value2",
			wantLines:    []string{"key1=value1", "key2=value2"},
		},
		{
			name:         "update existing key",
			initialLines: []string{"key1=value1", "key2=value2"},
			key:          "key1",
			value:        "newvalue",
			wantLines:    []string{"key1=newvalue", "key2=value2"},
			wantUpdated:  true,
		},
		{
			name:         "preserves comments and blank lines",
			initialLines: []string{"# Comment", "", "key1=value1"},
			key:          "key2",
			value:        "value2",
			wantLines:    []string{"# Comment", "", "key1=value1", "key2=value2"},
		},
		{
			name:         "handles whitespace in existing line",
			initialLines: []string{"  key1  =  value1  "},
			key:          "key1",
			value:        "newvalue",
			wantLines:    []string{"key1=newvalue"},
			wantUpdated:  true,
		},
		{
			name:         "keeps inline comment",
			initialLines: []string{"platform=linux # dedicated box"},
			key:          "platform",
			value:        "windows",
			wantLines:    []string{"platform=windows # dedicated box"},
			wantUpdated:  true,
		},
		{
			name:         "quotes values with spaces",
			initialLines: []string{},
			key:          "pager",
			value:        "less -R",
			wantLines:    []string{`pager="less -R"`},
		},
		{
			name:         "commented key is not touched",
			initialLines: []string{"# target_dir="},
			key:          "target_dir",
			value:        "/srv/tf",
			wantLines:    []string{"# target_dir=", "target_dir=/srv/tf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, updated := Set(tt.initialLines, tt.key, tt.value)
			require.Equal(t, tt.wantLines, got)
			require.Equal(t, tt.wantUpdated, updated)
		})
	}
}

func TestUnset(t *testing.T) {
	tests := []struct {
		name         string
		initialLines []string
		key          string
		wantLines    []string
		wantRemoved  bool
	}{
		{
			name:         "remove from empty",
			initialLines: []string{},
			key:          "key",
			wantLines:    nil,
		},
		{
			name:         "remove existing key",
			initialLines: []string{"key1=value1", "key2=value2"},
			key:          "key1",
			wantLines:    []string{"key2=value2"},
			wantRemoved:  true,
		},
		{
			name:         "remove non-existent key",
			initialLines: []string{"key1=value1"},
			key:          "key2",
			wantLines:    []string{"key1=value1"},
		},
		{
			name:         "preserves comments and blank lines",
			initialLines: []string{"# Comment", "", "key1=value1", "key2=value2"},
			key:          "key1",
			wantLines:    []string{"# Comment", "", "key2=value2"},
			wantRemoved:  true,
		},
		{
			name:         "handles whitespace in line",
			initialLines: []string{"  key1  =  value1  "},
			key:          "key1",
			wantLines:    nil,
			wantRemoved:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := Unset(tt.initialLines, tt.key)
			require.Equal(t, tt.wantLines, got)
			require.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestProvider_RoundTrip(t *testing.T) {
	path := tempConfig(t)
	writeConfig(t, path, "# mine", "platform=linux")

	p, err := NewProvider(path)
	require.NoError(t, err)
	require.Equal(t, path, p.Path())

	require.NoError(t, p.Set("platform", "windows"))
	require.NoError(t, p.Set("target_dir", "/srv/tf2"))

	v, ok := p.Get("platform")
	require.True(t, ok)
	require.Equal(t, "windows", v)

	require.NoError(t, p.Unset("target_dir"))
	v, ok = p.Get("target_dir")
	require.True(t, ok)
	require.Empty(t, v)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "# mine\nplatform=windows\n", string(content))

	_, err = os.Stat(path + lockSuffix)
	require.True(t, os.IsNotExist(err), "lock file is released")
}

func TestNewProvider_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SRCDSRM_DATA_DIR", dir)
	t.Setenv("SRCDSRM_CONFIG", "")

	p, err := NewProvider("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "srcdsrm.conf"), p.Path())
}
