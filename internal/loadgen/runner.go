package loadgen

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/stride/pkg/logger"
)

// statsResponse mirrors GET /api/stats.
type statsResponse struct {
	DeviceID     string `json:"device_id"`
	TotalSteps   int    `json:"total_steps"`
	RecordsCount int    `json:"records_count"`
}

// Run generates submissions, posts them concurrently, then checks the
// service's per-device totals against what was sent.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get()
	start := time.Now()

	subs := generateSubmissions(ctx, cfg)

	// Expected totals per device, for verification after the run.
	expectedSteps := make(map[string]int, cfg.NumDevices)
	expectedCount := make(map[string]int, cfg.NumDevices)
	for _, sub := range subs {
		expectedSteps[sub.DeviceID] += sub.StepCount
		expectedCount[sub.DeviceID]++
	}

	client := newHTTPClient(cfg.Timeout)
	target := cfg.BaseURL + "/api/steps"

	var accepted, failed int64
	subCh := make(chan Submission, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range subCh {
				status, err := client.postJSON(ctx, target, sub, nil)
				if err != nil || status != http.StatusCreated {
					atomic.AddInt64(&failed, 1)
					if cfg.Verbose {
						log.Warn(ctx, "submission failed",
							logger.String("deviceID", sub.DeviceID),
							logger.Int("status", status),
							logger.Error(err),
						)
					}
					continue
				}
				atomic.AddInt64(&accepted, 1)
			}
		}()
	}

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			close(subCh)
			wg.Wait()
			return fmt.Errorf("run cancelled: %w", ctx.Err())
		case subCh <- sub:
		}
	}
	close(subCh)
	wg.Wait()

	elapsed := time.Since(start)
	log.Info(ctx, "submission phase complete",
		logger.Int64("accepted", atomic.LoadInt64(&accepted)),
		logger.Int64("failed", atomic.LoadInt64(&failed)),
		logger.String("elapsed", elapsed.String()),
	)

	if err := verifyTotals(ctx, cfg, client, expectedSteps, expectedCount); err != nil {
		return err
	}

	log.Info(ctx, "verification passed", logger.Int("devices", len(expectedSteps)))
	return nil
}

// verifyTotals compares each device's reported stats with the submitted
// totals. Any mismatch fails the run.
func verifyTotals(ctx context.Context, cfg *Config, client *httpClient, steps, counts map[string]int) error {
	log := logger.Get()
	mismatches := 0

	for device, wantSteps := range steps {
		var stats statsResponse
		statsURL := cfg.BaseURL + "/api/stats?device_id=" + url.QueryEscape(device)
		status, err := client.getJSON(ctx, statsURL, &stats)
		if err != nil {
			return fmt.Errorf("stats fetch for %s failed: %w", device, err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("stats fetch for %s returned status %d", device, status)
		}

		if stats.TotalSteps != wantSteps || stats.RecordsCount != counts[device] {
			mismatches++
			log.Warn(ctx, "totals mismatch",
				logger.String("deviceID", device),
				logger.Int("wantSteps", wantSteps),
				logger.Int("gotSteps", stats.TotalSteps),
				logger.Int("wantRecords", counts[device]),
				logger.Int("gotRecords", stats.RecordsCount),
			)
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d of %d devices reported wrong totals", mismatches, len(steps))
	}
	return nil
}
