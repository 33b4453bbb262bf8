package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/boxshot/internal/adapters/http/api"
	"github.com/okian/boxshot/internal/adapters/mq/queue"
	"github.com/okian/boxshot/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies records calls and returns canned answers.
type mockDependencies struct {
	snapshot types.Snapshot
	outcome  types.ShotOutcome
	removed  bool
	err      error

	shots  []types.Point
	exits  []uint64
	resets int
}

func (m *mockDependencies) Snapshot(context.Context) (types.Snapshot, error) {
	return m.snapshot, m.err
}

func (m *mockDependencies) Shoot(_ context.Context, p types.Point) (types.ShotOutcome, error) {
	m.shots = append(m.shots, p)
	return m.outcome, m.err
}

func (m *mockDependencies) ExitAnimationComplete(_ context.Context, id uint64) (bool, error) {
	m.exits = append(m.exits, id)
	return m.removed, m.err
}

func (m *mockDependencies) PlayAgain(context.Context) (types.Snapshot, error) {
	m.resets++
	return m.snapshot, m.err
}

func (m *mockDependencies) GetStats(context.Context) map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newMux(deps *mockDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func serve(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{
			snapshot: types.Snapshot{RoundID: "r1", Energy: 100, State: "active", Width: 800, Height: 600},
		}
		mux := newMux(deps)

		Convey("Then health and metrics endpoints should be accessible", func() {
			So(serve(mux, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusOK)
			So(serve(mux, http.MethodGet, "/metrics", "").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then stats endpoint should be accessible", func() {
			w := serve(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Then the snapshot is served as JSON", func() {
			w := serve(mux, http.MethodGet, "/snapshot", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")

			var snap types.Snapshot
			So(json.Unmarshal(w.Body.Bytes(), &snap), ShouldBeNil)
			So(snap.RoundID, ShouldEqual, "r1")
			So(snap.Energy, ShouldEqual, 100)
		})

		Convey("Then wrong methods are not found", func() {
			So(serve(mux, http.MethodPost, "/snapshot", "").Code, ShouldEqual, http.StatusNotFound)
			So(serve(mux, http.MethodGet, "/shoot", "").Code, ShouldEqual, http.StatusNotFound)
			So(serve(mux, http.MethodGet, "/play-again", "").Code, ShouldEqual, http.StatusNotFound)
			So(serve(mux, http.MethodGet, "/exit/1", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestShoot(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{
			outcome: types.ShotOutcome{Accepted: true, X: 12.5, Y: 30, Cost: 10, Energy: 90, State: "active"},
		}
		mux := newMux(deps)

		Convey("When posting a valid shot", func() {
			w := serve(mux, http.MethodPost, "/shoot", `{"x":12.5,"y":30}`)

			Convey("Then it is forwarded and the outcome returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.shots, ShouldResemble, []types.Point{{X: 12.5, Y: 30}})

				var out types.ShotOutcome
				So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
				So(out.Accepted, ShouldBeTrue)
				So(out.Energy, ShouldEqual, 90)
			})
		})

		Convey("When the shot is refused because the game is over", func() {
			deps.outcome = types.ShotOutcome{Accepted: false, State: "game_over"}
			w := serve(mux, http.MethodPost, "/shoot", `{"x":1,"y":1}`)

			Convey("Then it is still a 200", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"accepted":false`)
			})
		})

		Convey("When the body is invalid", func() {
			cases := []string{`not json`, `{}`, `{"x":1}`, `{"y":1}`}
			for _, body := range cases {
				w := serve(mux, http.MethodPost, "/shoot", body)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			}
			So(deps.shots, ShouldBeEmpty)
		})

		Convey("When the loop queue is full", func() {
			deps.err = fmt.Errorf("shoot: %w", queue.ErrFull)
			w := serve(mux, http.MethodPost, "/shoot", `{"x":1,"y":1}`)

			Convey("Then it reports backpressure", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				So(w.Body.String(), ShouldContainSubstring, `"code":"backpressure"`)
			})
		})

		Convey("When the loop is not running", func() {
			deps.err = fmt.Errorf("shoot: %w", queue.ErrClosed)
			w := serve(mux, http.MethodPost, "/shoot", `{"x":1,"y":1}`)

			Convey("Then it reports the service unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When an unexpected error occurs", func() {
			deps.err = errors.New("boom")
			w := serve(mux, http.MethodPost, "/shoot", `{"x":1,"y":1}`)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestExit(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{removed: true}
		mux := newMux(deps)

		Convey("When reporting an exit for a numeric id", func() {
			w := serve(mux, http.MethodPost, "/exit/42", "")

			Convey("Then the id is forwarded", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.exits, ShouldResemble, []uint64{42})
				So(w.Body.String(), ShouldContainSubstring, `"removed":true`)
			})
		})

		Convey("When the id is malformed", func() {
			for _, path := range []string{"/exit/", "/exit/abc", "/exit/1/2", "/exit/-3"} {
				So(serve(mux, http.MethodPost, path, "").Code, ShouldEqual, http.StatusBadRequest)
			}
			So(deps.exits, ShouldBeEmpty)
		})
	})
}

func TestPlayAgain(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{snapshot: types.Snapshot{RoundID: "r2", Generation: 1, Energy: 100, State: "active"}}
		mux := newMux(deps)

		Convey("When playing again", func() {
			w := serve(mux, http.MethodPost, "/play-again", "")

			Convey("Then the fresh snapshot is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.resets, ShouldEqual, 1)
				So(w.Body.String(), ShouldContainSubstring, `"round_id":"r2"`)
			})
		})
	})
}

func TestKindHelpers(t *testing.T) {
	Convey("Given a wrapped kind", t, func() {
		cause := errors.New("unexpected EOF")
		err := api.WrapKind("api.shoot", api.ErrBadRequest, cause)

		Convey("Then it matches both kind and cause", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.shoot: bad request: unexpected EOF")
		})

		Convey("Then a bare kind reads op: kind", func() {
			err := api.NewKind("api.exit", api.ErrBadRequest)
			So(err.Error(), ShouldEqual, "api.exit: bad request")
			So(errors.Is(api.WrapKind("op", api.ErrBackpressure, nil), api.ErrBackpressure), ShouldBeTrue)
		})
	})
}
