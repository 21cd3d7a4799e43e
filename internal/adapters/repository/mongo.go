package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/metrics"
)

// Default MongoDB settings, overridable via options.
const (
	defaultDatabase       = "stepcounter"
	defaultCollection     = "steps"
	defaultConnectTimeout = 10 * time.Second
)

// MongoStore is the document-store backed Store. One instance is created at
// startup and shared by all requests; the driver handles pooling.
type MongoStore struct {
	client         *mongo.Client
	coll           *mongo.Collection
	database       string
	collection     string
	connectTimeout time.Duration
}

// NewMongoStore connects to the document store and verifies reachability
// with a ping. A failed ping returns an error so the caller can fail fast
// instead of serving requests against a dead store.
func NewMongoStore(ctx context.Context, uri string, opts ...MongoOption) (*MongoStore, error) {
	s := &MongoStore{
		database:       defaultDatabase,
		collection:     defaultCollection,
		connectTimeout: defaultConnectTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	cctx, cancel := context.WithTimeout(ctx, s.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	s.client = client
	s.coll = client.Database(s.database).Collection(s.collection)
	return s, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return nil
}

// Insert persists one record and returns the assigned ObjectID in hex form.
func (s *MongoStore) Insert(ctx context.Context, rec model.StepRecord) (string, error) {
	start := time.Now()
	res, err := s.coll.InsertOne(ctx, rec)
	metrics.RecordStoreLatency("insert", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError("insert")
		return "", fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

// ListViews returns the projected records for a device in server_timestamp
// order. The _id, device_id and date fields never leave the store.
func (s *MongoStore) ListViews(ctx context.Context, deviceID string) ([]model.RecordView, error) {
	findOpts := options.Find().
		SetProjection(bson.D{
			{Key: "_id", Value: 0},
			{Key: "step_count", Value: 1},
			{Key: "client_timestamp", Value: 1},
			{Key: "server_timestamp", Value: 1},
		}).
		SetSort(bson.D{{Key: "server_timestamp", Value: 1}})

	start := time.Now()
	cursor, err := s.coll.Find(ctx, bson.M{"device_id": deviceID}, findOpts)
	metrics.RecordStoreLatency("list", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError("list")
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	views := make([]model.RecordView, 0)
	if err := cursor.All(ctx, &views); err != nil {
		metrics.RecordStoreError("list")
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return views, nil
}

// ListRecords returns the full records for a device.
func (s *MongoStore) ListRecords(ctx context.Context, deviceID string) ([]model.StepRecord, error) {
	start := time.Now()
	cursor, err := s.coll.Find(ctx, bson.M{"device_id": deviceID})
	metrics.RecordStoreLatency("list_full", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError("list_full")
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	records := make([]model.StepRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		metrics.RecordStoreError("list_full")
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return records, nil
}
