// Package testutil provides an in-memory stand-in for the upstream REST
// API and small request helpers for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// FakeUpstream serves the upstream resource collections from memory.
// Collections are keyed by their path below /api/v1, e.g. "Authors".
type FakeUpstream struct {
	*httptest.Server

	mu          sync.Mutex
	collections map[string]map[int]map[string]any
	nextID      map[string]int
	failStatus  int
	hits        atomic.Int32
	lastHeaders http.Header
}

// NewFakeUpstream starts a fake upstream that is closed with the test.
func NewFakeUpstream(t testing.TB, collections ...string) *FakeUpstream {
	t.Helper()
	f := &FakeUpstream{
		collections: make(map[string]map[int]map[string]any),
		nextID:      make(map[string]int),
	}
	for _, c := range collections {
		f.collections[c] = make(map[int]map[string]any)
		f.nextID[c] = 1
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Seed stores item under id in collection.
func (f *FakeUpstream) Seed(collection string, id int, item map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item["id"] = id
	f.collections[collection][id] = item
	if id >= f.nextID[collection] {
		f.nextID[collection] = id + 1
	}
}

// FailWith makes every following request answer status. Zero restores
// normal behaviour.
func (f *FakeUpstream) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
}

// Hits returns the number of requests received.
func (f *FakeUpstream) Hits() int {
	return int(f.hits.Load())
}

// LastHeader returns a header of the most recent request.
func (f *FakeUpstream) LastHeader(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastHeaders.Get(key)
}

func (f *FakeUpstream) serve(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastHeaders = r.Header.Clone()

	if f.failStatus != 0 {
		w.WriteHeader(f.failStatus)
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, "/api/v1/")
	if !ok {
		// Root path answers so readiness probes succeed.
		w.WriteHeader(http.StatusOK)
		return
	}
	name, idPart, hasID := strings.Cut(rest, "/")
	items, ok := f.collections[name]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if !hasID {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, sorted(items))
		case http.MethodPost:
			item, ok := decodeItem(w, r)
			if !ok {
				return
			}
			id := asInt(item["id"])
			if id == 0 {
				id = f.nextID[name]
			}
			if id >= f.nextID[name] {
				f.nextID[name] = id + 1
			}
			item["id"] = id
			items[id] = item
			writeJSON(w, http.StatusOK, item)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.Atoi(idPart)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		item, ok := items[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPut:
		if _, ok := items[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		item, ok := decodeItem(w, r)
		if !ok {
			return
		}
		item["id"] = id
		items[id] = item
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if _, ok := items[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(items, id)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func sorted(items map[int]map[string]any) []map[string]any {
	ids := make([]int, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, items[id])
	}
	return out
}

func decodeItem(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var item map[string]any
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item == nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}
	return item, true
}

func asInt(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   []byte
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyBytes,
	}
}

// Decode unmarshals the recorded body into v.
func (rr RecordResponse) Decode(v any) error {
	return json.Unmarshal(rr.Body, v)
}
