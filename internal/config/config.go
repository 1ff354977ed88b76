// Package config decodes server.yaml, grounded directly on the
// teacher's main.go (a flat Config struct populated via
// yaml.NewDecoder) generalized from the teacher's tunnel-disguise
// fields to the settings a Minecraft protocol server actually needs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/risusan87/mcpyserver/internal/protoerr"
)

// Config is the full server.yaml shape.
type Config struct {
	ListenAddress string `yaml:"listen_address"`
	ListenPort    int    `yaml:"listen_port"`

	ProtocolVersion int32  `yaml:"protocol_version"`
	VersionName     string `yaml:"version_name"`
	Motd            string `yaml:"motd"`
	FaviconPath     string `yaml:"favicon_path"`
	MaxPlayers      int    `yaml:"max_players"`

	CompressionThreshold int  `yaml:"compression_threshold"`
	OnlineMode           bool `yaml:"online_mode"`

	SessionServerBaseURL string `yaml:"session_server_base_url"`

	WorldPath string `yaml:"world_path"`
	LogPath   string `yaml:"log_path"`
}

// defaultConfig mirrors the teacher's own post-decode default-filling
// (cfg.ProtocolID == 0 -> 773, cfg.MaxPlayers == 0 -> 20), pre-applied
// before Decode so a key the file omits keeps its default instead of
// being indistinguishable from an explicit zero value. Compression
// defaults to disabled (-1): nothing in this server's minimum packet
// coverage sends CSetCompression to tell the client to start expecting
// compressed frames, so turning it on by default would desync real
// clients.
func defaultConfig() Config {
	return Config{
		ListenAddress:        "0.0.0.0",
		ListenPort:           25565,
		ProtocolVersion:      769,
		VersionName:          "1.21.4",
		Motd:                 "A Minecraft Server",
		MaxPlayers:           20,
		CompressionThreshold: -1,
		SessionServerBaseURL: "https://sessionserver.mojang.com",
		WorldPath:            "world",
		LogPath:              "resources/logs/app.log",
	}
}

// Load reads and decodes path over defaultConfig, so any key the file
// omits keeps its default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", protoerr.ErrIO, path, err)
	}
	defer f.Close()

	cfg := defaultConfig()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", protoerr.ErrIO, path, err)
	}
	return &cfg, nil
}
