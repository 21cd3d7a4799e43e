// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timestamp layouts for server-side stamping. The server timestamp is
// fixed-width so its lexicographic order matches chronological order when
// the store sorts it as a plain string.
const (
	ServerTimestampLayout = "2006-01-02T15:04:05.000000Z07:00"
	DateLayout            = "2006-01-02"
)

// StepRecord is one persisted step-count observation for a device.
// device_id, step_count, client_timestamp, server_timestamp and date are
// populated unconditionally at write time; records are never mutated.
type StepRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DeviceID        string             `bson:"device_id" json:"device_id"`
	StepCount       int                `bson:"step_count" json:"step_count"`
	ClientTimestamp string             `bson:"client_timestamp" json:"client_timestamp"`
	ServerTimestamp string             `bson:"server_timestamp" json:"server_timestamp"`
	Date            string             `bson:"date" json:"date"`
}

// RecordView is the projected shape returned by list queries: the store id,
// device id and date are stripped.
type RecordView struct {
	StepCount       int    `bson:"step_count" json:"step_count"`
	ClientTimestamp string `bson:"client_timestamp" json:"client_timestamp"`
	ServerTimestamp string `bson:"server_timestamp" json:"server_timestamp"`
}

// Submission is a validated write request: device id already defaulted,
// step count already parsed.
type Submission struct {
	DeviceID        string
	StepCount       int
	ClientTimestamp string
}

// NewStepRecord builds the record to persist for a submission, stamping the
// server timestamp and the UTC calendar day from now.
func NewStepRecord(sub Submission, now time.Time) StepRecord {
	utc := now.UTC()
	return StepRecord{
		DeviceID:        sub.DeviceID,
		StepCount:       sub.StepCount,
		ClientTimestamp: sub.ClientTimestamp,
		ServerTimestamp: utc.Format(ServerTimestampLayout),
		Date:            utc.Format(DateLayout),
	}
}

// View projects a record to its list shape.
func (r StepRecord) View() RecordView {
	return RecordView{
		StepCount:       r.StepCount,
		ClientTimestamp: r.ClientTimestamp,
		ServerTimestamp: r.ServerTimestamp,
	}
}

// StepCount accepts a JSON number or a numeric string and parses it strictly
// to an integer. Anything else fails closed.
type StepCount int

// UnmarshalJSON implements strict integer coercion for submissions.
func (s *StepCount) UnmarshalJSON(data []byte) error {
	tok := strings.TrimSpace(string(data))
	if strings.HasPrefix(tok, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("%w: %s", ErrNonNumericSteps, tok)
		}
		tok = strings.TrimSpace(str)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNonNumericSteps, tok)
	}
	*s = StepCount(n)
	return nil
}

// Int returns the parsed value.
func (s StepCount) Int() int { return int(s) }
