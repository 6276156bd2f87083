package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/armline/internal/app"
	"github.com/ayusman/armline/internal/config"
	"github.com/ayusman/armline/internal/notify"
	"github.com/ayusman/armline/internal/server"
	"github.com/ayusman/armline/internal/store"
	"github.com/ayusman/armline/internal/tray"
)

func main() {
	fmt.Println("Armline - Arm Position Assessment")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".armline")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dataDir, "config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "armline.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Persisted settings override the config file.
	settings, err := st.Settings().All()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	cfg = cfg.ApplySettings(settings)

	application := app.New(app.Config{
		CameraID:     cfg.CameraID,
		Assess:       cfg.Assess(),
		TickInterval: cfg.TickInterval(),
		Hook:         notify.NewRunner(cfg.CompletionHook, 10*time.Second),
	})

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start detection pipeline: %v", err)
	}
	defer application.Stop()

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    application.Camera(),
		Session:   application.Session(),
		LineRatio: cfg.LineRatio,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.HTTPAddr)
		if err := srv.ListenAndServe(cfg.HTTPAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	t := tray.New()
	t.OnStart(func() {
		application.Session().Start()
	})
	t.OnReset(func() {
		application.Session().Reset()
	})
	t.OnQuit(func() {
		application.Stop()
	})

	// Mirror the session state into the tray menu.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			t.SetState(application.Session().State().String())
		}
	}()

	// Blocks until quit
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.armline/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".armline", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
