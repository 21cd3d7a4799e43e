// Package loadgen drives synthetic step submissions against a running
// service and verifies the reported totals.
package loadgen

import "time"

// Config controls a load generation run.
type Config struct {
	// BaseURL of the target service, e.g. http://localhost:5000.
	BaseURL string

	// NumRecords is the total number of submissions to send.
	NumRecords int

	// NumDevices is the number of distinct synthetic devices.
	NumDevices int

	// Workers is the number of concurrent submitters.
	Workers int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Verbose enables per-request logging.
	Verbose bool
}
