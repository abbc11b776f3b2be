package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rigid3d/internal/config"
	"rigid3d/internal/game"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "simulation config (YAML)")
	scenePath := flag.String("scene", "assets/scenes/playground.json", "scene to load (JSON)")
	flag.Parse()

	// Paths given on the command line are relative to the shell's directory;
	// defaults are relative to the executable's.
	if cwd, err := os.Getwd(); err == nil {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "config":
				*configPath = config.ResolvePath(cwd, *configPath)
			case "scene":
				*scenePath = config.ResolvePath(cwd, *scenePath)
			}
		})
	}

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	g := game.New(cfg, *configPath, *scenePath)
	g.Run()
}
