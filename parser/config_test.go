package parser

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	in := `
prune_tags: [script, style]
prune_empty: true
move_contents_up: true
carry_namespaces_on_move: true
foreign_markup: false
cdata_policy: cdata
`
	cfg, err := LoadConfig(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"script", "style"}, cfg.PruneTags)
	assert.True(t, cfg.PruneEmpty)
	assert.True(t, cfg.MoveContentsUp)
	assert.True(t, cfg.CarryNamespacesOnMove)
	assert.False(t, cfg.ForeignMarkup)
	// missing keys keep their defaults
	assert.True(t, cfg.NamespacesAware)
	assert.Equal(t, CDATAForScriptAndStyle, cfg.CDATAPolicy)
}

func TestLoadConfigEmpty(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"bad yaml", "prune_tags: [", "failed to parse config"},
		{"wrong type", "prune_empty: [1]", "failed to parse config"},
		{"unknown cdata policy", "cdata_policy: xml", "invalid config"},
		{"blank prune tag", "prune_tags: ['']", "invalid config"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadConfig(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestConfigLogger(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	assert.Equal(t, logrus.StandardLogger(), cfg.logger())

	cfg.Debug = true
	l, ok := cfg.logger().(*logrus.Logger)
	require.True(t, ok)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	custom := logrus.New()
	cfg.Logger = custom
	assert.Equal(t, custom, cfg.logger())
}
