package engagebot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// LoadConfig looks for .env in the working directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return path
}

const minimalConfig = `
[bot]
token = "file-token"
group_channel_id = 1234
admin_ids = [42]

[db]
driver = "sqlite"
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, snowflake.ID(1234), cfg.Bot.GroupChannelID)
	assert.Equal(t, "engagement.db", cfg.DB.Path)
	assert.Equal(t, 5, cfg.Ledger.StartingScore)
	assert.Equal(t, 7, cfg.Ledger.QueueLimit)
	assert.Equal(t, 5, cfg.Ledger.LeaderboardLimit)
	assert.Equal(t, "v1", cfg.Ledger.LinkRuleVersion)
	assert.Equal(t, 10*time.Second, cfg.Verifier.Settle())
	assert.Equal(t, 45*time.Second, cfg.Verifier.Timeout())
	assert.Equal(t, "file", cfg.Cookies.Backend)
	assert.Equal(t, "cookies.json", cfg.Cookies.Path)
	assert.True(t, cfg.Bot.IsAdmin(42))
	assert.False(t, cfg.Bot.IsAdmin(43))
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, minimalConfig)
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("GROUP_CHANNEL_ID", "5678")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Bot.Token)
	assert.Equal(t, snowflake.ID(5678), cfg.Bot.GroupChannelID)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Missing group channel",
			content: "[bot]\ntoken = \"t\"\n[db]\ndriver = \"sqlite\"\n",
		},
		{
			name:    "Postgres without host",
			content: "[bot]\ntoken = \"t\"\ngroup_channel_id = 1\n[db]\ndriver = \"postgres\"\ndatabase = \"x\"\n",
		},
		{
			name:    "Unknown link rule",
			content: minimalConfig + "[ledger]\nlink_rule_version = \"v99\"\n",
		},
		{
			name:    "Settle longer than timeout",
			content: minimalConfig + "[verifier]\nsettle_seconds = 30\ntimeout_seconds = 20\n",
		},
		{
			name:    "Spaces backend without credentials",
			content: minimalConfig + "[cookies]\nbackend = \"spaces\"\n",
		},
		{
			name:    "Unknown cookie backend",
			content: minimalConfig + "[cookies]\nbackend = \"redis\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
