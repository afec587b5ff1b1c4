package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	lightdetector "github.com/menta2k/light-detector"
	"github.com/menta2k/light-detector/internal/config"
	"github.com/menta2k/light-detector/internal/monitor"
	"github.com/menta2k/light-detector/internal/server"
	"github.com/menta2k/light-detector/pkg/camera"
)

func main() {
	var configPath, source, host string
	var port int
	var interval float64
	var once, debug, printConfig bool

	flag.StringVar(&configPath, "config", "", "config file path (default: ~/.config/light-detector/config.json if present)")
	flag.StringVar(&source, "source", "", "image file or directory used as the frame source")
	flag.StringVar(&host, "host", "", "HTTP listen host (overrides config)")
	flag.IntVar(&port, "port", 0, "HTTP listen port (overrides config)")
	flag.Float64Var(&interval, "interval", 0, "seconds between background detections (overrides config)")
	flag.BoolVar(&once, "once", false, "analyze a single frame, print the result as JSON and exit")
	flag.BoolVar(&debug, "debug", false, "log every background detection")
	flag.BoolVar(&printConfig, "print-config", false, "print the effective configuration and exit")

	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	if source != "" {
		cfg.Camera.Source = source
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if interval != 0 {
		cfg.Camera.IntervalSeconds = interval
	}
	if debug {
		cfg.Server.DebugMode = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if printConfig {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(data))
		return
	}

	if cfg.Camera.Source == "" {
		log.Fatalf("usage: %s -source image-or-dir [-once] [-port 5000]", filepath.Base(os.Args[0]))
	}

	detector := lightdetector.NewWithConfig(cfg.Detection)

	if once {
		result, err := detector.AnalyzeFile(cfg.Camera.Source)
		if err != nil {
			log.Fatal(err)
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(data))
		return
	}

	frames, err := camera.NewFileSource(cfg.Camera.Source)
	if err != nil {
		log.Fatal(err)
	}
	defer frames.Close()

	mon := monitor.New(detector, frames, monitor.Options{
		Interval:     time.Duration(cfg.Camera.IntervalSeconds * float64(time.Second)),
		ErrorBackoff: time.Duration(cfg.Camera.ErrorBackoffSeconds * float64(time.Second)),
		Debug:        cfg.Server.DebugMode,
	})
	if err := mon.Start(); err != nil {
		log.Fatal(err)
	}
	defer mon.Stop()

	srv := server.New(detector, mon, cfg.Server)

	go func() {
		log.Printf("Listening on http://%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := srv.Start(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}

// loadConfig resolves the configuration: an explicit -config path must load,
// the default path is used when it exists, otherwise defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}

	defaultPath := config.GetConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		return config.LoadFromFile(defaultPath)
	}
	return config.Default(), nil
}
