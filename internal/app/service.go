// Package app provides the core service that implements the dependencies
// required by the HTTP API.
package app

import (
	"context"
	"time"

	"github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
)

// Fallback device identifier when configuration provides none.
const defaultDeviceID = "android_device_001"

// Service executes the step telemetry operations against the injected
// store. It holds no per-request state; every call is one store round trip.
type Service struct {
	store           repository.Store
	defaultDeviceID string
	now             func() time.Time
	logger          logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects the record store. Required.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDefaultDeviceID sets the device identifier applied when a request
// names none.
func WithDefaultDeviceID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.defaultDeviceID = id
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for server-side stamping.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultDeviceID: defaultDeviceID,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// DefaultDeviceID reports the configured fallback device identifier.
func (s *Service) DefaultDeviceID() string {
	return s.defaultDeviceID
}

func (s *Service) resolveDevice(deviceID string) string {
	if deviceID == "" {
		return s.defaultDeviceID
	}
	return deviceID
}

// SubmitSteps stamps server-side metadata onto a submission and writes one
// record. Returns the store-assigned identifier.
func (s *Service) SubmitSteps(ctx context.Context, sub model.Submission) (string, error) {
	sub.DeviceID = s.resolveDevice(sub.DeviceID)
	rec := model.NewStepRecord(sub, s.now())

	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		s.logger.Error(ctx, "step record insert failed",
			logger.String("deviceID", rec.DeviceID),
			logger.Error(err),
		)
		return "", err
	}

	metrics.RecordIngest(rec.StepCount)
	s.logger.Debug(ctx, "step record stored",
		logger.String("id", id),
		logger.String("deviceID", rec.DeviceID),
		logger.Int("stepCount", rec.StepCount),
	)
	return id, nil
}

// ListSteps returns the projected records for a device in chronological
// order of ingestion.
func (s *Service) ListSteps(ctx context.Context, deviceID string) (model.DeviceLog, error) {
	device := s.resolveDevice(deviceID)
	views, err := s.store.ListViews(ctx, device)
	if err != nil {
		s.logger.Error(ctx, "step record list failed",
			logger.String("deviceID", device),
			logger.Error(err),
		)
		return model.DeviceLog{}, err
	}
	return model.DeviceLog{DeviceID: device, Records: views}, nil
}

// DeviceStats folds all of a device's records into a total. A device with
// no records yields zero totals, not an error.
func (s *Service) DeviceStats(ctx context.Context, deviceID string) (model.DeviceStats, error) {
	device := s.resolveDevice(deviceID)
	records, err := s.store.ListRecords(ctx, device)
	if err != nil {
		s.logger.Error(ctx, "step stats query failed",
			logger.String("deviceID", device),
			logger.Error(err),
		)
		return model.DeviceStats{}, err
	}

	total := 0
	for _, rec := range records {
		total += rec.StepCount
	}
	return model.DeviceStats{
		DeviceID:     device,
		TotalSteps:   total,
		RecordsCount: len(records),
	}, nil
}
