package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("motd: Custom MOTD\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "Custom MOTD", cfg.Motd)
	require.Equal(t, "0.0.0.0", cfg.ListenAddress)
	require.Equal(t, 25565, cfg.ListenPort)
	require.Equal(t, int32(769), cfg.ProtocolVersion)
	require.Equal(t, -1, cfg.CompressionThreshold)
	require.Equal(t, "https://sessionserver.mojang.com", cfg.SessionServerBaseURL)
}

func TestLoadHonorsExplicitZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("compression_threshold: 0\nmax_players: 1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 0, cfg.CompressionThreshold)
	require.Equal(t, 1, cfg.MaxPlayers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
