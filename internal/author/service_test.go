package author

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookgateway/internal/platform/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// newUpstreamService points a Service at handler through the real client.
func newUpstreamService(t *testing.T, handler http.HandlerFunc) (*Service, *observer.ObservedLogs) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newServiceFor(t, srv.URL)
}

func newServiceFor(t *testing.T, baseURL string) (*Service, *observer.ObservedLogs) {
	t.Helper()
	client, err := upstream.NewClient(upstream.Config{BaseURL: baseURL})
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	return NewService(client, zap.New(core)), logs
}

// unreachableService returns a Service whose upstream refuses connections.
func unreachableService(t *testing.T) (*Service, *observer.ObservedLogs) {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return newServiceFor(t, srv.URL)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestService_ListAll(t *testing.T) {
	expected := []Author{
		{ID: 1, IDBook: 101, FirstName: "John", LastName: "Doe"},
		{ID: 2, IDBook: 102, FirstName: "Jane", LastName: "Smith"},
	}

	t.Run("returns list of authors", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/"+Endpoint, r.URL.Path)
			writeJSON(t, w, http.StatusOK, expected)
		})

		got, outcome := svc.ListAll(context.Background())
		assert.Equal(t, OutcomeOK, outcome)
		assert.Equal(t, expected, got)
	})

	t.Run("null body is an empty list", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("null"))
		})

		got, outcome := svc.ListAll(context.Background())
		assert.Equal(t, OutcomeOK, outcome)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("transport failure returns empty list and logs", func(t *testing.T) {
		svc, logs := unreachableService(t)

		got, outcome := svc.ListAll(context.Background())
		assert.Equal(t, OutcomeUnavailable, outcome)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Equal(t, 1, logs.FilterMessage("author upstream call failed").Len())
	})

	t.Run("error status returns empty list", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		got, outcome := svc.ListAll(context.Background())
		assert.Equal(t, OutcomeRejected, outcome)
		assert.Empty(t, got)
	})

	t.Run("malformed body returns empty list", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("[{"))
		})

		got, outcome := svc.ListAll(context.Background())
		assert.Equal(t, OutcomeRejected, outcome)
		assert.Empty(t, got)
	})
}

func TestService_GetByID(t *testing.T) {
	t.Run("returns author if exists", func(t *testing.T) {
		expected := Author{ID: 1, IDBook: 201, FirstName: "Peter", LastName: "Jones"}
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/"+Endpoint+"/1", r.URL.Path)
			writeJSON(t, w, http.StatusOK, expected)
		})

		got, outcome := svc.GetByID(context.Background(), 1)
		assert.True(t, outcome.OK())
		assert.Equal(t, expected, got)
	})

	t.Run("absent on 404", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		got, outcome := svc.GetByID(context.Background(), 1)
		assert.Equal(t, OutcomeNotFound, outcome)
		assert.False(t, outcome.OK())
		assert.Equal(t, Author{}, got)
	})

	t.Run("absent on transport failure", func(t *testing.T) {
		svc, _ := unreachableService(t)

		got, outcome := svc.GetByID(context.Background(), 1)
		assert.False(t, outcome.OK())
		assert.Equal(t, Author{}, got)
	})

	t.Run("absent on empty success body", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		_, outcome := svc.GetByID(context.Background(), 1)
		assert.Equal(t, OutcomeNotFound, outcome)
	})
}

func TestService_ListByBook(t *testing.T) {
	const bookID = 101
	all := []Author{
		{ID: 1, IDBook: bookID, FirstName: "John", LastName: "Doe"},
		{ID: 2, IDBook: 102, FirstName: "Jane", LastName: "Smith"},
		{ID: 3, IDBook: bookID, FirstName: "Peter", LastName: "Jones"},
		{ID: 4, IDBook: 103, FirstName: "Ann", LastName: "Lee"},
	}

	t.Run("returns authors for given book in upstream order", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, all)
		})

		got, outcome := svc.ListByBook(context.Background(), bookID)
		assert.True(t, outcome.OK())
		require.Len(t, got, 2)
		assert.Equal(t, []int{1, 3}, []int{got[0].ID, got[1].ID})
		for _, a := range got {
			assert.Equal(t, bookID, a.IDBook)
		}
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, all)
		})

		got, _ := svc.ListByBook(context.Background(), 999)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("transport failure is an empty list", func(t *testing.T) {
		svc, _ := unreachableService(t)

		got, outcome := svc.ListByBook(context.Background(), bookID)
		assert.Equal(t, OutcomeUnavailable, outcome)
		assert.Empty(t, got)
	})
}

func TestService_Add(t *testing.T) {
	toAdd := Author{IDBook: 301, FirstName: "Alice", LastName: "Brown"}

	t.Run("returns added author", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			var in Author
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, toAdd, in)
			in.ID = 3
			writeJSON(t, w, http.StatusCreated, in)
		})

		got, outcome := svc.Add(context.Background(), toAdd)
		assert.True(t, outcome.OK())
		assert.Equal(t, 3, got.ID)
		assert.Equal(t, toAdd.FirstName, got.FirstName)
	})

	t.Run("transport failure returns the input unchanged", func(t *testing.T) {
		svc, logs := unreachableService(t)

		got, outcome := svc.Add(context.Background(), toAdd)
		assert.Equal(t, OutcomeUnavailable, outcome)
		assert.Equal(t, toAdd, got)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("error status returns the input unchanged", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		got, outcome := svc.Add(context.Background(), toAdd)
		assert.Equal(t, OutcomeRejected, outcome)
		assert.Equal(t, toAdd, got)
	})

	t.Run("empty echo falls back to the input", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		got, outcome := svc.Add(context.Background(), toAdd)
		assert.True(t, outcome.OK())
		assert.Equal(t, toAdd, got)
	})
}

func TestService_Update(t *testing.T) {
	toUpdate := Author{ID: 1, IDBook: 401, FirstName: "Updated", LastName: "Author"}

	tests := []struct {
		name   string
		status int
		want   Outcome
	}{
		{"true on no content", http.StatusNoContent, OutcomeOK},
		{"true on ok", http.StatusOK, OutcomeOK},
		{"false on not found", http.StatusNotFound, OutcomeNotFound},
		{"false on server error", http.StatusInternalServerError, OutcomeRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/"+Endpoint+"/1", r.URL.Path)
				body, _ := io.ReadAll(r.Body)
				assert.True(t, strings.Contains(string(body), `"firstName":"Updated"`))
				w.WriteHeader(tt.status)
			})

			outcome := svc.Update(context.Background(), toUpdate)
			assert.Equal(t, tt.want, outcome)
			assert.Equal(t, tt.status/100 == 2, outcome.OK())
		})
	}

	t.Run("false on transport failure", func(t *testing.T) {
		svc, _ := unreachableService(t)
		assert.False(t, svc.Update(context.Background(), toUpdate).OK())
	})
}

func TestService_Remove(t *testing.T) {
	t.Run("true on success", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/"+Endpoint+"/1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		assert.True(t, svc.Remove(context.Background(), 1).OK())
	})

	t.Run("false on not found", func(t *testing.T) {
		svc, _ := newUpstreamService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		assert.Equal(t, OutcomeNotFound, svc.Remove(context.Background(), 1))
	})

	t.Run("false on transport failure", func(t *testing.T) {
		svc, _ := unreachableService(t)
		assert.Equal(t, OutcomeUnavailable, svc.Remove(context.Background(), 1))
	})
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "ok", OutcomeOK.String())
	assert.Equal(t, "not_found", OutcomeNotFound.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
	assert.Equal(t, "unavailable", OutcomeUnavailable.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
