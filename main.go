package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"blink/config"
	"blink/engine"
	"blink/log"
	"blink/obsws"
	"blink/overlay"
	"blink/shutdown"
	"blink/sound"
)

var version = "dev"

// tickInterval drives the animation loop. 16ms keeps fades smooth
// without noticeable CPU cost for a handful of shapes.
const tickInterval = 16 * time.Millisecond

var sink RenderSink = nopSink{}

var shutdownOnce sync.Once

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		log.SessionEnd()
		log.Close()
		quitGUI()
		os.Exit(0)
	})
}

func fallbackMonitor() overlay.Monitor {
	return overlay.Monitor{ID: 0, Width: 1920, Height: 1080, Scale: 1}
}

func main() {
	// Headless check before flag.Parse, which happens inside run().
	for _, arg := range os.Args[1:] {
		if arg == "-nogui" || arg == "--nogui" {
			run(fallbackMonitor())
			return
		}
	}
	initGUI()
}

func run(mon overlay.Monitor) {
	hostFlag := flag.String("host", "", "OBS websocket address (default from config, localhost:4455)")
	passwordFlag := flag.String("password", "", "OBS websocket password (or OBS_WEBSOCKET_PASSWORD)")
	configFlag := flag.String("config", "", "config file path (default: OS-specific location)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	crashFlag := flag.Bool("crash", false, "Trigger synthetic panic for testing crash logging")
	flag.Bool("nogui", false, "Run without the overlay window (log-only)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("blink %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *crashFlag {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Errorf("config error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	host := cfg.Host
	if *hostFlag != "" {
		host = *hostFlag
	}
	password := cfg.Password
	if *passwordFlag != "" {
		password = *passwordFlag
	}
	if password == "" {
		password = os.Getenv("OBS_WEBSOCKET_PASSWORD")
	}

	log.SessionStart(host)

	speaker := sound.NewSpeaker()
	go speaker.Init()

	eng := engine.New(cfg.Engine, speaker)
	mgr := overlay.NewManager(cfg.Layout, []overlay.Monitor{mon})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := obsws.New(host, password, eng.Notify)
	go src.Run(ctx)

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		<-sigChan
		gracefulShutdown()
	}()

	eng.Run(ctx, tickInterval, func(snaps []engine.Snapshot) {
		sink.Apply(mgr.Project(snaps))
	})
}
