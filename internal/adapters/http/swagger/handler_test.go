package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/stride/internal/adapters/http/swagger"
)

func TestRegister(t *testing.T) {
	Convey("Given a mux with the documentation routes registered", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		get := func(path string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		Convey("When the OpenAPI document is fetched", func() {
			w := get("/openapi.yaml")

			Convey("Then it serves the embedded spec as YAML", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "yaml")
				So(w.Body.String(), ShouldContainSubstring, "openapi:")
				So(w.Body.String(), ShouldContainSubstring, "/api/steps")
			})
		})

		Convey("When the docs page is fetched", func() {
			w := get("/api-docs")

			Convey("Then it serves the viewer HTML", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "openapi.yaml")
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		Convey("Then registration panics", func() {
			So(func() { swagger.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
