package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
)

type fakeHandler struct {
	lastRow    model.Row
	lastCol    int
	lastCoords model.Coordinates
	calls      int
	err        error
}

func (f *fakeHandler) All(context.Context) ([]byte, error) {
	f.calls++
	return []byte(`[]`), f.err
}

func (f *fakeHandler) Cell(_ context.Context, row model.Row, column int) ([]byte, bool, error) {
	f.calls++
	f.lastRow, f.lastCol = row, column
	return []byte(`{}`), true, f.err
}

func (f *fakeHandler) Locate(_ context.Context, c model.Coordinates) ([]byte, bool, error) {
	f.calls++
	f.lastCoords = c
	return []byte(`{"Row":"A","Column":1}`), true, f.err
}

func serve(h TriangleHandler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	Mount(r, slog.New(slog.NewTextHandler(io.Discard, nil)), h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestCell_ParsesPathParams(t *testing.T) {
	f := &fakeHandler{}
	rr := serve(f, "/api/triangle/d/7")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if f.lastRow != model.RowD || f.lastCol != 7 {
		t.Fatalf("handler got %v/%d", f.lastRow, f.lastCol)
	}
}

func TestLocate_ParsesNegativeVertices(t *testing.T) {
	f := &fakeHandler{}
	rr := serve(f, "/api/triangle/-10/0/0/-5/7/8")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	want := model.Coordinates{V1: model.Point{X: -10, Y: 0}, V2: model.Point{X: 0, Y: -5}, V3: model.Point{X: 7, Y: 8}}
	if f.lastCoords != want {
		t.Fatalf("coords=%s want %s", f.lastCoords, want)
	}
}

func TestUnparseableParams_NeverReachHandler(t *testing.T) {
	for _, p := range []string{"/api/triangle/Z/1", "/api/triangle/A/1.5", "/api/triangle/1/2/3/4/5/six"} {
		f := &fakeHandler{}
		rr := serve(f, p)
		if rr.Code != http.StatusBadRequest || rr.Body.String() != `"Validation error"` {
			t.Fatalf("%s: %d %s", p, rr.Code, rr.Body.String())
		}
		if f.calls != 0 {
			t.Fatalf("%s reached the handler", p)
		}
	}
}

func TestHandlerError_Is500(t *testing.T) {
	f := &fakeHandler{err: errors.New("boom")}
	for _, p := range []string{"/api/triangle", "/api/triangle/A/1", "/api/triangle/0/10/0/0/10/10"} {
		if rr := serve(f, p); rr.Code != http.StatusInternalServerError {
			t.Fatalf("%s: status=%d want 500", p, rr.Code)
		}
	}
}

func TestFoldBase(t *testing.T) {
	cases := []struct {
		in, want string
		ok       bool
	}{
		{"/api/Triangle/A/1", "/api/triangle/A/1", true},
		{"/API/TRIANGLE", "/api/triangle", true},
		{"/api/triangle/b/2", "/api/triangle/b/2", false},
		{"/api/Triangles", "/api/Triangles", false},
		{"/healthz", "/healthz", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := foldBase(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("foldBase(%q)=%q,%v want %q,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
