package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ryansname/bmscheck/src/advisor"
)

// readlineWriter wraps log output to work with readline
type readlineWriter struct {
	rl *readline.Instance
}

func (w *readlineWriter) Write(p []byte) (n int, err error) {
	if w.rl != nil {
		w.rl.Clean()
	}
	n, err = os.Stderr.Write(p)
	if w.rl != nil {
		w.rl.Refresh()
	}
	return n, err
}

// Global readline writer for log output
var rlWriter = &readlineWriter{}

// printThresholds writes the active limits
func printThresholds(out io.Writer, t advisor.Thresholds) {
	fmt.Fprintf(out, "  health          > %.2f\n", t.HealthMin)
	fmt.Fprintf(out, "  charge rate     <= %.2f\n", t.ChargeRateMax)
	fmt.Fprintf(out, "  state of charge %.1f - %.1f %%\n", t.SOCMin, t.SOCMax)
	fmt.Fprintf(out, "  temperature     %.1f - %.1f C\n", t.TempMin, t.TempMax)
}

// handleReplCommand processes a single interactive command
func handleReplCommand(cmd string, adv *advisor.Advisor, out io.Writer) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "check":
		reading, err := parseReadingArgs(parts[1:])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		printVerdict(out, adv, adv.Evaluate(reading))

	case "thresholds":
		printThresholds(out, adv.Thresholds())

	case "help":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  check <health> <rate> <soc> <temp>  - Evaluate a reading")
		fmt.Fprintln(out, "  thresholds                          - Show active thresholds")
		fmt.Fprintln(out, "  help                                - Show this help")

	default:
		fmt.Fprintf(out, "Unknown command: %s (try 'help')\n", parts[0])
	}
}

// readlineLoop runs the readline loop, sending commands to the channel
func readlineLoop(
	ctx context.Context,
	cancel context.CancelFunc,
	rl *readline.Instance,
	commandChan chan<- string,
) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			cancel()
			return
		}
		if err != nil {
			cancel() // EOF ends the session
			return
		}
		line = strings.TrimSpace(line)
		if line != "" {
			commandChan <- line
		}
	}
}

// getHistoryFilePath returns the path for the repl history file
func getHistoryFilePath() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheDir = filepath.Join(home, ".cache")
	}
	appCache := filepath.Join(cacheDir, "bmscheck")
	_ = os.MkdirAll(appCache, 0750)
	return filepath.Join(appCache, "repl_history")
}

// replWorker evaluates readings typed at an interactive prompt
func replWorker(ctx context.Context, cancel context.CancelFunc, adv *advisor.Advisor) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "bms> ",
		HistoryFile: getHistoryFilePath(),
	})
	if err != nil {
		log.Printf("Repl worker: readline init failed: %v", err)
		cancel()
		return
	}
	defer func() {
		_ = rl.Close()
		rlWriter.rl = nil
	}()

	rlWriter.rl = rl
	log.SetOutput(rlWriter)

	log.Println("Repl started (type 'help' for commands)")

	commandChan := make(chan string, 10)
	go readlineLoop(ctx, cancel, rl, commandChan)

	for {
		select {
		case cmd := <-commandChan:
			handleReplCommand(cmd, adv, rl.Stdout())
		case <-ctx.Done():
			log.Println("Repl stopped")
			return
		}
	}
}
