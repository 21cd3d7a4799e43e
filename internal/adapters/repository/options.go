package repository

import "time"

// MongoOption applies a configuration option to the MongoStore.
type MongoOption func(*MongoStore)

// WithDatabase sets the database holding the step records.
func WithDatabase(name string) MongoOption {
	return func(s *MongoStore) {
		if name != "" {
			s.database = name
		}
	}
}

// WithCollection sets the collection holding the step records.
func WithCollection(name string) MongoOption {
	return func(s *MongoStore) {
		if name != "" {
			s.collection = name
		}
	}
}

// WithConnectTimeout bounds the initial connect and ping.
func WithConnectTimeout(timeout time.Duration) MongoOption {
	return func(s *MongoStore) {
		if timeout > 0 {
			s.connectTimeout = timeout
		}
	}
}
