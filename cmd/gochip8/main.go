// Package main implements the gochip8 emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gochip8/internal/app"
	"gochip8/internal/version"
)

func main() {
	// Parse command line flags
	var (
		romFile     = flag.String("rom", "", "Path to CHIP-8 ROM file")
		configFile  = flag.String("config", "", "Path to configuration file")
		debug       = flag.Bool("debug", false, "Enable debug logging")
		nogui       = flag.Bool("nogui", false, "Run without a window (headless mode)")
		frames      = flag.Uint64("frames", 0, "Stop after N frames (0 runs until the window closes)")
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	if *showVersion {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "A ROM file is required (-rom path/to/program.ch8)")
		printUsage()
		os.Exit(1)
	}

	setupGracefulShutdown()

	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	application, err := app.NewApplication(configPath, *nogui)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			log.Printf("Application cleanup error: %v", err)
		}
	}()

	if *debug {
		config := application.GetConfig()
		config.Debug.EnableLogging = true
		config.Debug.TraceUnimplemented = true
		application.GetMachine().SetTraceLogging(true)
		fmt.Println("Debug mode enabled")
	}

	fmt.Printf("Loading ROM: %s\n", *romFile)
	if err := application.LoadROM(*romFile); err != nil {
		log.Fatalf("Failed to load ROM: %v", err)
	}

	if err := application.Run(*frames); err != nil {
		log.Fatalf("Emulation failed: %v", err)
	}

	printSessionStats(application)
}

// printSessionStats reports shutdown statistics
func printSessionStats(application *app.Application) {
	emulator := application.GetEmulator()
	fmt.Printf("Session statistics:\n")
	fmt.Printf("  Frames:       %d\n", emulator.FrameCount())
	fmt.Printf("  Instructions: %d\n", emulator.StepCount())
	fmt.Printf("  Session time: %v\n", emulator.Uptime())
	if count := emulator.UnimplementedCount(); count > 0 {
		fmt.Printf("  Unimplemented opcodes dispatched: %d (last: 0x%04X)\n",
			count, uint16(application.GetMachine().LastUnimplemented()))
	}
}

// setupGracefulShutdown sets up signal handling for graceful shutdown
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\nInterrupt received, shutting down...")
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Println("gochip8 - CHIP-8 emulator")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  gochip8 -rom <file> [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  gochip8 -rom game.ch8                  # Run in a window")
	fmt.Println("  gochip8 -rom game.ch8 -debug           # Trace unimplemented opcodes")
	fmt.Println("  gochip8 -nogui -rom test.ch8 -frames 120  # Headless automation run")
	fmt.Println("  gochip8 -config custom.json -rom game.ch8")
	fmt.Println()
	fmt.Println("CONTROLS:")
	fmt.Println("  Escape - Quit (window mode)")
	fmt.Println()
	fmt.Println("CONFIGURATION:")
	fmt.Println("  Config file: ./config/gochip8.json (created on first run)")
}
