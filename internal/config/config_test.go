package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOutline(t *testing.T) {
	path := writeFile(t, "outline.json", `{
		"enabled": true,
		"title": "Acceptance Report",
		"_version": "rev 4.2",
		"sections": [
			{
				"enabled": true,
				"title": "Pools",
				"method": "storage/pools",
				"formatter": "collection",
				"fields": ["poolName", "version"]
			}
		]
	}`)

	root, err := LoadOutline(path)
	require.NoError(t, err)
	assert.Equal(t, "Acceptance Report", root.Title)
	assert.Equal(t, "rev 4.2", root.Version)
	require.Len(t, root.Sections, 1)
	assert.Equal(t, []string{"poolName", "version"}, root.Sections[0].Fields)
	assert.False(t, root.Sections[0].Postfilter)
}

func TestLoadOutline_Missing(t *testing.T) {
	_, err := LoadOutline(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadOutline_Malformed(t *testing.T) {
	path := writeFile(t, "outline.json", `{"title": `)
	_, err := LoadOutline(path)
	assert.ErrorContains(t, err, "parsing outline")
}

func TestLoadProfile_Defaults(t *testing.T) {
	profile, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "localhost", profile.Host)
	assert.Equal(t, 8443, profile.Port)
	assert.Equal(t, 8192, profile.FetchLimit)
	assert.Equal(t, DefaultOutputTemplate, profile.OutputTemplate)
}

func TestLoadProfile_File(t *testing.T) {
	path := writeFile(t, "profile.yaml", "host: nas-01\nusername: admin\ninsecure: true\n")
	profile, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "nas-01", profile.Host)
	assert.Equal(t, "admin", profile.Username)
	assert.True(t, profile.Insecure)
	assert.Equal(t, 8192, profile.FetchLimit, "zero limit falls back to the ceiling default")
}

func TestLoadProfile_Malformed(t *testing.T) {
	path := writeFile(t, "profile.yaml", "host: [\n")
	_, err := LoadProfile(path)
	assert.ErrorContains(t, err, "parsing profile")
}
