package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of .toml scene files")
	verbose := flag.Bool("v", false, "Enable debug logging")
	consoleSize := flag.Int("console", 200, "Number of log messages kept for /api/console")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	console := server.NewConsole(*consoleSize)
	text := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	core.SetLogger(slog.New(server.NewConsoleHandler(text, console)))

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir, console)

	core.Logger().Info("ray caster web server", "port", *port)

	if err := webServer.Start(); err != nil {
		core.Logger().Error("server stopped", "error", err)
		os.Exit(1)
	}
}
