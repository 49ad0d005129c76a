// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/querylog"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

var errStoreDown = errors.New("store down")

// memoryLog is an in-memory query log used as both recorder and reader.
type memoryLog struct {
	mu       sync.Mutex
	entries  []models.QueryLogEntry
	writeErr error
	readErr  error
	state    string
}

func (m *memoryLog) Record(_ context.Context, e models.QueryLogEntry) (models.QueryLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return models.QueryLogEntry{}, &models.PersistenceError{Op: "record", Backend: "memory", Err: m.writeErr}
	}
	e.ID = int64(len(m.entries) + 1)
	e.CreatedAt = time.Now().UTC()
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *memoryLog) List(_ context.Context, opts querylog.ListOptions) ([]models.QueryLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []models.QueryLogEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
	}
	if opts.Offset >= len(out) {
		return nil, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryLog) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return 0, m.readErr
	}
	return len(m.entries), nil
}

func (m *memoryLog) Backend() string { return "memory" }

func (m *memoryLog) State() string {
	if m.state == "" {
		return "closed"
	}
	return m.state
}

// testCatalog holds movies A..F with ids 101..106.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]models.Movie{
		{ID: 101, Title: "A"},
		{ID: 102, Title: "B"},
		{ID: 103, Title: "C"},
		{ID: 104, Title: "D"},
		{ID: 105, Title: "E"},
		{ID: 106, Title: "F"},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func testIndex(t *testing.T, name string, cat *catalog.Catalog, rowA []float64) *similarity.Index {
	t.Helper()
	rows := make([][]float64, 6)
	for i := range rows {
		rows[i] = make([]float64, 6)
		rows[i][i] = 1
	}
	rows[0] = rowA
	idx, err := similarity.FromRows(name, cat, rows, similarity.Options{})
	if err != nil {
		t.Fatalf("FromRows(%s): %v", name, err)
	}
	return idx
}

type testServer struct {
	handler http.Handler
	log     *memoryLog
}

// newTestServer wires the API over a six-movie catalog. For movie A, tags
// rank B C D E F and genres rank B E F D C.
func newTestServer(t *testing.T, log *memoryLog, opts ...HandlerOption) *testServer {
	t.Helper()

	cat := testCatalog(t)
	signals, err := recommend.NewSignals(
		recommend.Signal{Name: "tags", Label: "are", Source: testIndex(t, "tags", cat, []float64{1, 0.9, 0.8, 0.7, 0.6, 0.5})},
		recommend.Signal{Name: "genres", Label: "on the basis of genres are", Source: testIndex(t, "genres", cat, []float64{1, 0.95, 0.1, 0.2, 0.9, 0.3})},
	)
	if err != nil {
		t.Fatalf("NewSignals: %v", err)
	}

	var recorder recommend.QueryRecorder
	if log != nil {
		recorder = log
		opts = append([]HandlerOption{WithQueryLog(log)}, opts...)
	}

	engine, err := recommend.NewEngine(nil, cat, signals, nil, recorder, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	h, err := NewHandler(engine, cat, opts...)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	return &testServer{
		handler: NewRouter(h, NewChiMiddleware(mwCfg)).Setup(),
		log:     log,
	}
}

func (s *testServer) do(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec, nil)
	if env.Status != "error" || env.Error == nil || env.Error.Code != code {
		t.Fatalf("error body = %s, want code %s", rec.Body.String(), code)
	}
}
