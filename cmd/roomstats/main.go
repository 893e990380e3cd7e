package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/config"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/server"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/util"
)

var (
	port    = flag.Int("port", 0, "server port (config.toml wins unless port is unset there)")
	devMode = flag.Bool("dev", false, "development mode")
	dbPath  = flag.String("db", "", "sqlite database path (overrides config)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Hashoo Hotels Rooms Daily Stats")
	fmt.Println("==========================================")

	// .env carries the Google credentials in hosted deployments
	if err := godotenv.Load(); err == nil {
		fmt.Println("loaded environment from .env")
	}

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dbPath != "" {
		cfg.Store.DBPath = *dbPath
	}

	if cfg.Store.Backend == "sqlite" {
		if _, err := config.EnsureDataDir(cfg); err != nil {
			log.Printf("failed to create data directory: %v", err)
		}
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("listening on port %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("opening browser: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("could not open browser, visit %s manually\n", url)
		}
	} else {
		fmt.Printf("dev mode: visit %s\n", url)
	}

	fmt.Println("\npress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
	if err := srv.Close(); err != nil {
		log.Printf("close failed: %v", err)
	}
}
