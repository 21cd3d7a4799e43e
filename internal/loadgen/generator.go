package loadgen

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/okian/stride/pkg/logger"
)

// Step count bounds for generated submissions.
const (
	minSteps   = 1
	stepsRange = 5000
)

// Submission mirrors the POST /api/steps body.
type Submission struct {
	DeviceID  string `json:"device_id"`
	StepCount int    `json:"step_count"`
	Timestamp string `json:"timestamp"`
}

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateSubmissions creates submissions spread over NumDevices synthetic
// device ids, with client timestamps spaced one second apart.
func generateSubmissions(ctx context.Context, cfg *Config) []Submission {
	logger.Get().Info(ctx, "generating submissions",
		logger.Int("records", cfg.NumRecords),
		logger.Int("devices", cfg.NumDevices),
	)

	devices := make([]string, cfg.NumDevices)
	for i := range devices {
		devices[i] = "loadgen-" + uuid.New().String()
	}

	base := time.Now().UTC()
	subs := make([]Submission, cfg.NumRecords)
	for i := range subs {
		subs[i] = Submission{
			DeviceID:  devices[i%len(devices)],
			StepCount: minSteps + randomInt(stepsRange),
			Timestamp: base.Add(time.Duration(i) * time.Second).Format(time.RFC3339),
		}
	}
	return subs
}
