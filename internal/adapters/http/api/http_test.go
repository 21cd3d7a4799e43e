package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/stride/internal/adapters/http/api"
	"github.com/okian/stride/internal/domain/model"
)

// mockService implements api.Dependencies for handler tests.
type mockService struct {
	submitted []model.Submission
	submitID  string
	submitErr error

	log    model.DeviceLog
	logErr error

	stats    model.DeviceStats
	statsErr error
}

func (m *mockService) SubmitSteps(_ context.Context, sub model.Submission) (string, error) {
	if m.submitErr != nil {
		return "", m.submitErr
	}
	m.submitted = append(m.submitted, sub)
	return m.submitID, nil
}

func (m *mockService) ListSteps(_ context.Context, deviceID string) (model.DeviceLog, error) {
	if m.logErr != nil {
		return model.DeviceLog{}, m.logErr
	}
	return m.log, nil
}

func (m *mockService) DeviceStats(_ context.Context, deviceID string) (model.DeviceStats, error) {
	if m.statsErr != nil {
		return model.DeviceStats{}, m.statsErr
	}
	return m.stats, nil
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux(&mockService{})

		Convey("When GET /api/health is called", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it reports a fixed healthy payload", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["status"], ShouldEqual, "healthy")
				So(body["message"], ShouldNotBeEmpty)
			})
		})

		Convey("When /api/health is called with POST", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSubmitSteps(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockService{submitID: "6562f1a2b3c4d5e6f7a8b9c0"}
		mux := newMux(deps)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/api/steps", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("When a valid submission is posted", func() {
			w := post(`{"device_id":"dev1","step_count":150,"timestamp":"2024-01-01T10:00:00"}`)

			Convey("Then it is created and returns the store id", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["id"], ShouldEqual, "6562f1a2b3c4d5e6f7a8b9c0")
				So(body["message"], ShouldNotBeEmpty)
			})

			Convey("And the submission reaches the service unchanged", func() {
				So(deps.submitted, ShouldHaveLength, 1)
				So(deps.submitted[0].DeviceID, ShouldEqual, "dev1")
				So(deps.submitted[0].StepCount, ShouldEqual, 150)
				So(deps.submitted[0].ClientTimestamp, ShouldEqual, "2024-01-01T10:00:00")
			})
		})

		Convey("When step_count arrives as a numeric string", func() {
			w := post(`{"step_count":"250","timestamp":"2024-01-01T10:00:00"}`)

			Convey("Then it parses and is created", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(deps.submitted, ShouldHaveLength, 1)
				So(deps.submitted[0].StepCount, ShouldEqual, 250)
			})
		})

		Convey("When step_count is missing", func() {
			w := post(`{"timestamp":"2024-01-01T10:00:00"}`)

			Convey("Then it is rejected with the fixed message and no write happens", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["error"], ShouldEqual, "Missing required fields")
				So(deps.submitted, ShouldBeEmpty)
			})
		})

		Convey("When timestamp is missing", func() {
			w := post(`{"step_count":100}`)

			Convey("Then it is rejected and no write happens", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.submitted, ShouldBeEmpty)
			})
		})

		Convey("When the body is empty", func() {
			w := post("")

			Convey("Then it is rejected as missing fields", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["error"], ShouldEqual, "Missing required fields")
			})
		})

		Convey("When step_count is not numeric", func() {
			w := post(`{"step_count":"lots","timestamp":"2024-01-01T10:00:00"}`)

			Convey("Then it fails closed with a client error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(deps.submitted, ShouldBeEmpty)
			})
		})

		Convey("When the store write fails", func() {
			deps.submitErr = errors.New("store write failed: connection reset")
			w := post(`{"step_count":100,"timestamp":"2024-01-01T10:00:00"}`)

			Convey("Then the error surfaces as a 500 with the underlying message", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)

				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["error"], ShouldContainSubstring, "connection reset")
			})
		})
	})
}

func TestListSteps(t *testing.T) {
	Convey("Given a server with records for a device", t, func() {
		deps := &mockService{
			log: model.DeviceLog{
				DeviceID: "dev1",
				Records: []model.RecordView{
					{StepCount: 150, ClientTimestamp: "2024-01-01T10:00:00", ServerTimestamp: "2024-01-01T10:00:01.000000Z"},
					{StepCount: 200, ClientTimestamp: "2024-01-01T11:00:00", ServerTimestamp: "2024-01-01T11:00:01.000000Z"},
				},
			},
		}
		mux := newMux(deps)

		Convey("When GET /api/steps is called", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/steps?device_id=dev1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it echoes the device and returns the ordered records", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body struct {
					DeviceID string             `json:"device_id"`
					Count    int                `json:"count"`
					Data     []model.RecordView `json:"data"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.DeviceID, ShouldEqual, "dev1")
				So(body.Count, ShouldEqual, 2)
				So(body.Data, ShouldHaveLength, 2)
				So(body.Data[0].StepCount, ShouldEqual, 150)
				So(body.Data[1].ServerTimestamp, ShouldBeGreaterThan, body.Data[0].ServerTimestamp)
			})
		})

		Convey("When the store query fails", func() {
			deps.logErr = errors.New("store query failed: no reachable servers")
			req := httptest.NewRequest(http.MethodGet, "/api/steps", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it returns a 500 with the underlying message", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)

				var body map[string]string
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["error"], ShouldContainSubstring, "no reachable servers")
			})
		})
	})
}

func TestDeviceStats(t *testing.T) {
	Convey("Given a server with aggregates for a device", t, func() {
		deps := &mockService{
			stats: model.DeviceStats{DeviceID: "dev1", TotalSteps: 350, RecordsCount: 2},
		}
		mux := newMux(deps)

		Convey("When GET /api/stats is called", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/stats?device_id=dev1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it returns totals and count", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var stats model.DeviceStats
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats.DeviceID, ShouldEqual, "dev1")
				So(stats.TotalSteps, ShouldEqual, 350)
				So(stats.RecordsCount, ShouldEqual, 2)
			})
		})

		Convey("When /api/stats is called with POST", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestCORSMiddleware(t *testing.T) {
	Convey("Given a CORS-wrapped mux", t, func() {
		handler := api.CORSMiddleware(newMux(&mockService{}))

		Convey("When any request is made", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			Convey("Then the response allows any origin", func() {
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})

		Convey("When a preflight OPTIONS request is made", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/steps", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			Convey("Then it short-circuits with no content", func() {
				So(w.Code, ShouldEqual, http.StatusNoContent)
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})
	})
}
