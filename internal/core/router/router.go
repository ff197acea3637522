// Package router translates /api/triangle requests into grid lookups.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/mohammed-shakir/triangle-grid/internal/core/model"
	"github.com/mohammed-shakir/triangle-grid/internal/core/observability"
	mylog "github.com/mohammed-shakir/triangle-grid/internal/logger"
)

const (
	BasePath = "/api/triangle"

	routeAll    = BasePath
	routeCell   = BasePath + "/{row}/{column}"
	routeLocate = BasePath + "/{v1x}/{v1y}/{v2x}/{v2y}/{v3x}/{v3y}"

	validationError = "Validation error"
)

// TriangleHandler serves grid lookups as ready-to-write JSON bodies. ok=false
// means the input does not address a cell.
type TriangleHandler interface {
	All(ctx context.Context) ([]byte, error)
	Cell(ctx context.Context, row model.Row, column int) (body []byte, ok bool, err error)
	Locate(ctx context.Context, c model.Coordinates) (body []byte, ok bool, err error)
}

// Mount registers the triangle API on r.
func Mount(r chi.Router, logger *slog.Logger, h TriangleHandler) {
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", handleAll(logger, h))
		r.Get("/{row}/{column}", handleCell(logger, h))
		r.Get("/{v1x}/{v1y}/{v2x}/{v2y}/{v3x}/{v3y}", handleLocate(logger, h))
	})
}

// CaseInsensitiveBase routes any casing of BasePath, e.g. /api/Triangle/A/1,
// as BasePath. Only the prefix is folded; row letters keep their case.
func CaseInsensitiveBase(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := foldBase(r.URL.Path); ok {
			r.URL.Path = p
			if rp, ok := foldBase(r.URL.RawPath); ok {
				r.URL.RawPath = rp
			}
		}
		next.ServeHTTP(w, r)
	})
}

func foldBase(p string) (string, bool) {
	n := len(BasePath)
	if len(p) < n || p[:n] == BasePath || !strings.EqualFold(p[:n], BasePath) {
		return p, false
	}
	if len(p) > n && p[n] != '/' {
		return p, false
	}
	return BasePath + p[n:], true
}

func handleAll(logger *slog.Logger, h TriangleHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		defer func() { observability.ObserveHTTP(r.Method, routeAll, sw.code, time.Since(start).Seconds()) }()

		body, err := h.All(r.Context())
		if err != nil {
			internalError(sw, r, logger, err)
			return
		}
		observability.IncLookup("all", true)
		writeBody(sw, http.StatusOK, body)
	}
}

func handleCell(logger *slog.Logger, h TriangleHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		defer func() { observability.ObserveHTTP(r.Method, routeCell, sw.code, time.Since(start).Seconds()) }()

		rawRow, rawCol := chi.URLParam(r, "row"), chi.URLParam(r, "column")
		ctx := mylog.WithCell(r.Context(), rawRow+rawCol)

		row, rowOK := model.ParseRow(rawRow)
		col, colErr := strconv.Atoi(rawCol)
		if !rowOK || colErr != nil {
			logger.DebugContext(ctx, "unparseable cell address", "row", rawRow, "column", rawCol)
			observability.IncLookup("cell", false)
			writeValidationError(sw)
			return
		}

		body, ok, err := h.Cell(ctx, row, col)
		if err != nil {
			internalError(sw, r, logger, err)
			return
		}
		observability.IncLookup("cell", ok)
		if !ok {
			writeValidationError(sw)
			return
		}
		writeBody(sw, http.StatusOK, body)
	}
}

var vertexParams = [6]string{"v1x", "v1y", "v2x", "v2y", "v3x", "v3y"}

func handleLocate(logger *slog.Logger, h TriangleHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		defer func() { observability.ObserveHTTP(r.Method, routeLocate, sw.code, time.Since(start).Seconds()) }()

		c, err := parseVertices(r)
		if err != nil {
			logger.DebugContext(r.Context(), "unparseable vertices", "err", err)
			observability.IncLookup("locate", false)
			writeValidationError(sw)
			return
		}

		body, ok, err := h.Locate(r.Context(), c)
		if err != nil {
			internalError(sw, r, logger, err)
			return
		}
		observability.IncLookup("locate", ok)
		if !ok {
			writeValidationError(sw)
			return
		}
		writeBody(sw, http.StatusOK, body)
	}
}

func parseVertices(r *http.Request) (model.Coordinates, error) {
	var v [6]int
	for i, name := range vertexParams {
		n, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			return model.Coordinates{}, err
		}
		v[i] = n
	}
	return model.Coordinates{
		V1: model.Point{X: v[0], Y: v[1]},
		V2: model.Point{X: v[2], Y: v[3]},
		V3: model.Point{X: v[4], Y: v[5]},
	}, nil
}

var validationBody, _ = json.Marshal(validationError)

func writeValidationError(w http.ResponseWriter) {
	writeBody(w, http.StatusBadRequest, validationBody)
}

func internalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.ErrorContext(r.Context(), "lookup failed", "err", err, "path", r.URL.Path)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeBody(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
