package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/diegok/puckstop/internal/app"
	"github.com/diegok/puckstop/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if cfg.Headless {
		showServerInfo(cfg.Port)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  puckstop [options]                  Play, using the leaderboard at --leaderboard")
	fmt.Fprintln(os.Stderr, "  puckstop --serve [options]          Play and host the leaderboard")
	fmt.Fprintln(os.Stderr, "  puckstop --serve --headless         Only host the leaderboard")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --port <port>         Leaderboard port (default: 3000, env PORT)")
	fmt.Fprintln(os.Stderr, "  --data <file>         Leaderboard file (default: leaderboard.json, env LEADERBOARD_FILE)")
	fmt.Fprintln(os.Stderr, "  --leaderboard <url>   Leaderboard service (default: http://localhost:<port>, env LEADERBOARD_URL)")
	fmt.Fprintln(os.Stderr, "  --layout <file>       YAML game table overriding the built-in one")
	fmt.Fprintln(os.Stderr, "  --lives <n>           Starting lives")
	fmt.Fprintln(os.Stderr, "  --mute                Start with sound off")
	fmt.Fprintln(os.Stderr, "  --log <file>          Log file while playing (default: puckstop.log, env PUCKSTOP_LOG)")
	fmt.Fprintln(os.Stderr, "  --log-level <level>   debug, info, warn or error (default: info)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  puckstop --serve")
	fmt.Fprintln(os.Stderr, "  puckstop --leaderboard http://192.168.1.100:3000")
	fmt.Fprintln(os.Stderr, "  puckstop --serve --headless --port 8080 --data /var/lib/puckstop/board.json")
}

func showServerInfo(port int) {
	fmt.Printf("Starting PuckStop leaderboard on port %d\n", port)
	fmt.Println("Players can connect using:")
	fmt.Println("")

	addrs, err := net.InterfaceAddrs()
	if err != nil {
		fmt.Printf("  puckstop --leaderboard http://localhost:%d\n", port)
		return
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}

		ip := ipNet.IP
		if ip.IsLoopback() || ip.To4() == nil {
			continue
		}

		fmt.Printf("  puckstop --leaderboard http://%s:%d\n", ip.String(), port)
	}

	fmt.Printf("  puckstop --leaderboard http://localhost:%d  (same machine)\n", port)
	fmt.Println("")
	fmt.Println("Press Ctrl+C to stop the server")
	fmt.Println("")
}
