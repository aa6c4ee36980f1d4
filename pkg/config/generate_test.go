package config

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfigContent(t *testing.T) {
	content, err := GenerateConfigContent()
	require.NoError(t, err)

	assert.Contains(t, content, "# work_dir = ")
	assert.Contains(t, content, "target/assembly")
	assert.Contains(t, content, "# default_start_level = 30")
	assert.Contains(t, content, "[features]")
	assert.Contains(t, content, "[maven]")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}

	// the commented template still parses, to an empty document
	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(content), &decoded))
}

func TestCommentOutConfigValues(t *testing.T) {
	in := "# note\n\n[maven]\nrepositories = []\n"
	assert.Equal(t, "# note\n\n[maven]\n# repositories = []\n", commentOutConfigValues(in))
}
