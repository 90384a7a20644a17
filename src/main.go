package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"

	"github.com/ryansname/bmscheck/src/advisor"
)

// SafeGo launches a goroutine with panic recovery and retry logic.
// On panic, retries with exponential backoff (max 10 retries).
// Retry count resets if worker ran for 2+ minutes before failing.
// After exhausting retries, cancels context to trigger shutdown.
func SafeGo(
	ctx context.Context,
	cancel context.CancelFunc,
	name string,
	fn func(ctx context.Context),
) {
	const maxRetries = 10
	const maxDelay = 10 * time.Minute
	const resetAfter = 2 * time.Minute

	go func() {
		retries := 0
		delay := time.Second

		for {
			startTime := time.Now()
			var panicValue any

			func() {
				defer func() {
					panicValue = recover()
				}()
				fn(ctx)
			}()

			if panicValue == nil {
				return
			}

			if time.Since(startTime) >= resetAfter {
				retries = 0
				delay = time.Second
			}

			retries++
			log.Printf("Panic in %s (attempt %d/%d): %v\n", name, retries, maxRetries, panicValue)

			if retries >= maxRetries {
				log.Printf("%s failed after %d retries, shutting down\n", name, maxRetries)
				cancel()
				return
			}

			log.Printf("%s will retry in %v\n", name, delay)
			select {
			case <-time.After(delay):
				delay = min(delay*2, maxDelay)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  bmscheck check <health> <charge_rate> <state_of_charge> <temperature>")
	fmt.Fprintln(os.Stderr, "  bmscheck repl")
	fmt.Fprintln(os.Stderr, "  bmscheck serve")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	adv := advisor.NewAdvisor(cfg.Thresholds)

	switch os.Args[1] {
	case "check":
		os.Exit(runCheck(os.Args[2:], adv, os.Stdout))
	case "repl":
		runUntilSignal(func(ctx context.Context, cancel context.CancelFunc) {
			SafeGo(ctx, cancel, "repl-worker", func(ctx context.Context) {
				replWorker(ctx, cancel, adv)
			})
		})
	case "serve":
		if !cfg.HasMQTTCredentials() {
			log.Fatal("MQTT_USERNAME and MQTT_PASSWORD must be set in .env file")
		}
		runUntilSignal(func(ctx context.Context, cancel context.CancelFunc) {
			startService(ctx, cancel, cfg)
		})
	default:
		usage()
		os.Exit(exitUsage)
	}
}

// runUntilSignal starts workers and blocks until interrupted or a worker cancels
func runUntilSignal(start func(ctx context.Context, cancel context.CancelFunc)) {
	ctx, cancel := context.WithCancel(context.Background())
	start(ctx, cancel)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Println("\nShutting down...")
	case <-ctx.Done():
		log.Println("\nShutting down...")
	}
	cancel()
}

// startService launches the MQTT evaluation workers
func startService(ctx context.Context, cancel context.CancelFunc, cfg AppConfig) {
	log.Println("Starting bmscheck service...")

	evaluatorConfig := cfg.EvaluatorConfig()

	msgChan := make(chan ReadingMessage, 10)
	mqttOutgoingChan := make(chan MQTTMessage, 100) // Larger buffer for queuing
	mqttClientChan := make(chan mqtt.Client, 1)     // Buffered to prevent blocking onConnect

	SafeGo(ctx, cancel, "mqtt-sender-worker", func(ctx context.Context) {
		mqttSenderWorker(ctx, mqttOutgoingChan, mqttClientChan)
	})

	mqttSender := NewMQTTSender(mqttOutgoingChan)

	if err := mqttSender.CreateVerdictEntity(evaluatorConfig); err != nil {
		cancel()
		log.Fatalf("Failed to create verdict entity: %v", err)
	}
	log.Println("Home Assistant verdict entity created")

	SafeGo(ctx, cancel, "evaluator-worker", func(ctx context.Context) {
		evaluatorWorker(ctx, msgChan, evaluatorConfig, mqttSender)
	})

	SafeGo(ctx, cancel, "mqtt-worker", func(ctx context.Context) {
		mqttWorker(ctx, cfg.MQTTBroker, []string{evaluatorConfig.RequestTopic},
			cfg.MQTTUsername, cfg.MQTTPassword, cfg.MQTTClientID, msgChan, mqttClientChan)
	})
}
