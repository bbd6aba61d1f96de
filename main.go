package main

import (
	"embed"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"go.uber.org/zap"

	studyhubApp "studyhub/internal/app"
	"studyhub/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	mcpMode := flag.Bool("mcp", false, "run as a standalone MCP stdio server (no GUI)")
	configPath := flag.String("config", "", "path to config.yaml (default <dataDir>/config.yaml)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	cfg := loadConfig(*configPath, logger)

	if *mcpMode {
		if err := studyhubApp.ServeMCP(cfg, logger); err != nil {
			logger.Fatal("mcp mode failed", zap.Error(err))
		}
		return
	}

	app := studyhubApp.New(cfg, logger)

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err = wails.Run(&options.App{
		Title:     "Study Hub",
		Width:     1440,
		Height:    900,
		MinWidth:  800,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 15, G: 15, B: 20, A: 1},
		Menu:             appMenu,
		OnStartup:        app.Startup,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				FullSizeContent:            true,
				UseToolbar:                 true,
				HideToolbarSeparator:       true,
			},
			About: &mac.AboutInfo{
				Title:   "Study Hub",
				Message: "Spatial notes and vision board",
			},
		},
	})

	if err != nil {
		logger.Fatal("wails run failed", zap.Error(err))
	}
}

func loadConfig(path string, logger *zap.Logger) *config.Config {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.Default()
		}
		path = filepath.Join(home, ".studyhub", "config.yaml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		logger.Warn("config load failed, using defaults", zap.String("path", path), zap.Error(err))
		return config.Default()
	}
	return cfg
}
