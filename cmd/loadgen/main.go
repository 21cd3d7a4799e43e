package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/stride/internal/loadgen"
	"github.com/okian/stride/pkg/logger"
)

// Default run parameters.
const (
	defaultNumRecords       = 1000
	defaultNumDevices       = 10
	defaultWorkerMultiplier = 2
	defaultTimeout          = 30 * time.Second
	defaultRunTimeout       = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:5000", "Base URL of the service")
		records = flag.Int("records", defaultNumRecords, "Number of step submissions to send")
		devices = flag.Int("devices", defaultNumDevices, "Number of distinct synthetic devices")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent submitters")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every failed request")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &loadgen.Config{
		BaseURL:    *baseURL,
		NumRecords: *records,
		NumDevices: *devices,
		Workers:    *workers,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if err := loadgen.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		os.Exit(1)
	}
}
