package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"martdash/internal/api"
	"martdash/internal/config"
	"martdash/internal/engine"
)

var (
	cfgFile    string
	flagData   string
	flagListen string
)

var rootCmd = &cobra.Command{
	Use:   "martdash-server",
	Short: "Big Mart sales dashboard backend",
	Long:  `Serves the Big Mart retail dataset as filterable dashboard aggregates over a JSON API.`,
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ~/.martdash/config.yaml)")
	rootCmd.Flags().StringVar(&flagData, "data", "", "dataset CSV path (overrides config)")
	rootCmd.Flags().StringVar(&flagListen, "listen", "", "HTTP listen address (overrides config)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if flagData != "" {
		cfg.DataPath = flagData
	}
	if flagListen != "" {
		cfg.ListenAddr = flagListen
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// Handler starts with no data; the API is live immediately and
	// answers 503 until the load below finishes.
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	go func() {
		log.Println("BACKGROUND: Loading dataset...")
		t0 := time.Now()

		store, err := engine.LoadColumnar(cfg.DataPath, cfg.ReferenceYear)
		if err != nil {
			// Schema errors are fatal: no partial dashboard.
			log.Fatalf("BACKGROUND: dataset load failed: %v", err)
		}
		h.SetStore(store)

		log.Printf("BACKGROUND: Load complete in %v (snapshot %s). API is fully ready.", time.Since(t0), store.SnapshotID)
	}()

	log.Printf("Server ready on %s (data loading in background...)", cfg.ListenAddr)
	return e.Start(cfg.ListenAddr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
