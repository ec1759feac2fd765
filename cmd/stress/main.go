package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/logdw"
	"github.com/lixenwraith/logdw/metrics"
)

const maxMessageSize = 6000

var priorities = []logdw.Priority{
	logdw.PriorityDebug,
	logdw.PriorityInfo,
	logdw.PriorityWarn,
	logdw.PriorityError,
}

var tags = []string{"stress", "net", "RIL-stress", "PHONE", "storage"}

func generateRandomMessage(r *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[r.Intn(len(chars))])
	}
	return sb.String()
}

// worker writes until stop closes. Every tenth record is a binary event.
func worker(id int, t *logdw.Transport, stop <-chan struct{}, wg *sync.WaitGroup, errCount *atomic.Int64) {
	defer wg.Done()
	r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for seq := 0; ; seq++ {
		select {
		case <-stop:
			return
		default:
		}

		var err error
		if seq%10 == 9 {
			_, err = t.BWriteLong(int32(id), int64(seq))
		} else {
			prio := priorities[r.Intn(len(priorities))]
			tag := tags[r.Intn(len(tags))]
			msg := generateRandomMessage(r, r.Intn(maxMessageSize)+10)
			_, err = t.Print(prio, tag, "wkr=%d seq=%d %s", id, seq, msg)
		}
		if err != nil {
			errCount.Add(1)
		}
	}
}

func main() {
	configFile := flag.String("config", "", "TOML config file with a [logdw] table")
	workers := flag.Int("workers", 64, "Concurrent writers")
	duration := flag.Duration("duration", 10*time.Second, "Test duration")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address while running")
	flag.Parse()

	fmt.Println("--- logdw Stress Test ---")

	cfg := logdw.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = logdw.NewConfigFromFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.InternalErrorsToStderr = true

	t := logdw.NewTransport()
	if err := t.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure transport: %v\n", err)
		os.Exit(1)
	}
	if !t.Available() {
		fmt.Printf("Collector socket %s is not writable, expect every write to fail.\n", cfg.SocketPath)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(metrics.NewCollector(t, prometheus.Labels{"process": "stress"}))
		srv := &http.Server{Addr: *metricsAddr, Handler: metrics.Handler(reg)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "Metrics server error: %v\n", err)
			}
		}()
		defer srv.Close()
		fmt.Printf("Metrics on http://%s/\n", *metricsAddr)
	}

	t.StartHeartbeat(ctx, time.Second)

	fmt.Printf("Starting stress test: %d workers for %v against %s.\n", *workers, *duration, cfg.SocketPath)
	fmt.Println("Press Ctrl+C to stop early.")

	var wg sync.WaitGroup
	var errCount atomic.Int64
	stop := make(chan struct{})
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go worker(i, t, stop, &wg, &errCount)
	}

	startTime := time.Now()
	select {
	case <-time.After(*duration):
	case <-ctx.Done():
		fmt.Println("\n[Signal Received] Stopping writers...")
	}
	close(stop)
	wg.Wait()
	elapsed := time.Since(startTime)

	stats := t.Stats()
	fmt.Println("\n--- Test Finished ---")
	fmt.Printf("Ran %v: %s\n", elapsed.Round(time.Millisecond), stats)
	fmt.Printf("Write errors: %d\n", errCount.Load())
	if elapsed.Seconds() > 0 {
		fmt.Printf("Approximate frames/sec: %.2f\n", float64(stats.FramesSent)/elapsed.Seconds())
	}

	if err := t.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Close error: %v\n", err)
	}
}
