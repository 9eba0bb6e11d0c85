package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/runtime-bridge/engine"
	"github.com/wippyai/runtime-bridge/registry"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to TOML config file")
		objects     = flag.Int("objects", 0, "Number of native objects (overrides config)")
		goroutines  = flag.Int("goroutines", 0, "Number of workers (overrides config)")
		iterations  = flag.Int("iters", 0, "Iterations per worker (overrides config)")
		verbose     = flag.Bool("v", false, "Log wrapper lifecycle events")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *objects > 0 {
		cfg.Objects = *objects
	}
	if *goroutines > 0 {
		cfg.Goroutines = *goroutines
	}
	if *iterations > 0 {
		cfg.Iterations = *iterations
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		registry.SetLogger(logger)
		engine.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Binding %d objects, %d workers x %d iterations...\n",
		cfg.Objects, cfg.Goroutines, cfg.Iterations)

	var st stats
	res, err := runStress(cfg, &st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(res.summary())
	if res.Violations > 0 || res.SlotDrops != int64(res.OwnedAtEnd) {
		os.Exit(1)
	}
}
