package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"tiers.md":              {Data: []byte("# Tiers\n\nStartup, boot and installed")},
		"option-work-dir.txt":   {Data: []byte("The assembly root")},
		"nested/kar-layout.txt": {Data: []byte("repository/ and resources/")},
		"config.txxt":           {Data: []byte("Configuration Guide")},
		"ignore.json":           {Data: []byte("{}")},
	}
}

func TestTopicManager_Scan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS(), Options{})
		require.NoError(t, tm.Scan())
		assert.Equal(t, []string{"kar-layout", "option-work-dir", "tiers"}, tm.ListTopics())
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := New(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Scan())

		topic, ok := tm.GetTopic("config")
		require.True(t, ok)
		assert.Equal(t, "Configuration Guide", topic.Content)
		assert.Equal(t, "config.txxt", topic.FilePath)
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(testFS(), Options{})
	require.NoError(t, tm.Scan())

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact", "tiers", "tiers"},
		{"flag style", "--work-dir", "option-work-dir"},
		{"bare option", "work-dir", "option-work-dir"},
		{"nested file", "kar-layout", "kar-layout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.query)
			require.True(t, ok)
			assert.Equal(t, tt.want, topic.Name)
		})
	}

	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

func TestInitialize_HelpCommand(t *testing.T) {
	newRoot := func() (*cobra.Command, *bytes.Buffer) {
		root := &cobra.Command{Use: "kassemble", Run: func(*cobra.Command, []string) {}}
		root.AddCommand(&cobra.Command{Use: "assemble", Short: "Build an assembly", Run: func(*cobra.Command, []string) {}})
		var out bytes.Buffer
		root.SetOut(&out)
		_, err := Initialize(root, testFS(), Options{})
		require.NoError(t, err)
		return root, &out
	}

	t.Run("topic content", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "tiers"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "# Tiers\n\nStartup, boot and installed", out.String())
	})

	t.Run("topic list", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "General topics:\n  kar-layout\n  tiers\n")
		assert.Contains(t, out.String(), "Option topics:\n  --work-dir\n")
		assert.Contains(t, out.String(), "Use 'kassemble help <topic>'")
	})

	t.Run("command help", func(t *testing.T) {
		root, out := newRoot()
		root.SetArgs([]string{"help", "assemble"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Build an assembly")
	})
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Title", r.Render("# Title", ".md"))
}

func TestGlamourRenderer_SkipsNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}
