// Command mcserver is the server's entry point: load config, build the
// shared logger, bind the listener, and run the stdin console loop —
// mirroring the teacher's main.go wiring (config decode, log setup,
// net.Listen, goroutine-per-connection accept loop) generalized from a
// disguised tunnel proxy to a real protocol server.
package main

import (
	"encoding/base64"
	"fmt"
	"net"
	"os"

	_ "github.com/risusan87/mcpyserver/internal/packet/configuration"
	_ "github.com/risusan87/mcpyserver/internal/packet/handshake"
	_ "github.com/risusan87/mcpyserver/internal/packet/login"
	_ "github.com/risusan87/mcpyserver/internal/packet/play"
	_ "github.com/risusan87/mcpyserver/internal/packet/status"

	"github.com/risusan87/mcpyserver/internal/conn"
	"github.com/risusan87/mcpyserver/internal/config"
	"github.com/risusan87/mcpyserver/internal/console"
	"github.com/risusan87/mcpyserver/internal/listener"
	"github.com/risusan87/mcpyserver/internal/mclog"
	"github.com/risusan87/mcpyserver/internal/packet"
)

const serverVersion = "1.21.4-go"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version", "--about":
			fmt.Printf("mcserver v%s\n", serverVersion)
			return
		}
	}

	cfg, err := config.Load("server.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load server.yaml:", err)
		os.Exit(1)
	}

	log := mclog.New(mclog.Options{Path: cfg.LogPath})
	logger := log.WithField("component", "server")

	favicon := loadFavicon(cfg.FaviconPath)
	meta := packet.ServerMeta{
		VersionName:     cfg.VersionName,
		ProtocolVersion: cfg.ProtocolVersion,
		Motd:            cfg.Motd,
		MaxPlayers:      cfg.MaxPlayers,
		FaviconBase64:   favicon,
	}

	factory := func(id int64, nc net.Conn) *conn.Connection {
		return conn.New(id, nc, cfg.OnlineMode, cfg.CompressionThreshold, meta, cfg.SessionServerBaseURL, nil, logger)
	}

	address := fmt.Sprintf("%s:%d", cfg.ListenAddress, cfg.ListenPort)
	ln, err := listener.Listen(address, factory, logger)
	if err != nil {
		logger.WithError(err).Fatal("could not start listener")
	}

	go ln.Serve()
	logger.Infof("server started on %s (protocol %d, %s)", address, cfg.ProtocolVersion, cfg.VersionName)

	cmd := console.New(os.Stdin, logger, func() {
		logger.Info("stop command received, shutting down")
		ln.Shutdown()
	})
	cmd.Serve()

	ln.Wait()
	logger.Info("server stopped")
}

// loadFavicon reads a PNG icon and renders it as the data URI the
// status JSON's favicon field expects. A missing or unreadable file
// just means no favicon is advertised.
func loadFavicon(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}
