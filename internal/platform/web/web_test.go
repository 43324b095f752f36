package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_ParseID(t *testing.T) {
	testCases := []struct {
		name         string
		pathValue    string
		expectedID   int
		expectedOK   bool
		expectedBody string
	}{
		{name: "Valid ID", pathValue: "42", expectedID: 42, expectedOK: true},
		{name: "Negative ID parses", pathValue: "-1", expectedID: -1, expectedOK: true},
		{name: "Not a number", pathValue: "abc", expectedBody: `{"validation_errors":{"id":"failed on rule: int"}}`},
		{name: "Empty", pathValue: "", expectedBody: `{"validation_errors":{"id":"failed on rule: int"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/products/x", nil)
			req.SetPathValue("id", tc.pathValue)
			rr := httptest.NewRecorder()
			// when
			id, ok := ParseID(rr, req, discardLogger())
			// then
			assert.Equal(t, tc.expectedOK, ok)
			if ok {
				assert.Equal(t, tc.expectedID, id)
				return
			}
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_DecodeJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	testCases := []struct {
		name         string
		body         string
		expectedOK   bool
		expectedBody string
	}{
		{name: "Valid", body: `{"name":"a","stock":1}`, expectedOK: true},
		{name: "Malformed", body: `{"name":`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "Empty body", body: ``, expectedBody: `{"error":"Invalid request body"}`},
		{name: "Wrong type", body: `{"stock":"x"}`, expectedBody: `{"validation_errors":{"stock":"failed on rule: int"}}`},
		{name: "Trailing whitespace", body: "{\"name\":\"a\",\"stock\":1}\n\t ", expectedOK: true},
		{name: "Trailing data", body: `{"name":"a","stock":1} garbage`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "Second value", body: `{"name":"a","stock":1}{}`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "Null body", body: `null`, expectedBody: `{"error":"Invalid request body"}`},
		{name: "Not an object", body: `[1]`, expectedBody: `{"error":"Invalid request body"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodPost, "/products/", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			var dst payload
			// when
			ok := DecodeJSON(rr, req, discardLogger(), &dst)
			// then
			assert.Equal(t, tc.expectedOK, ok)
			if ok {
				assert.Equal(t, payload{Name: "a", Stock: 1}, dst)
				return
			}
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ValidateStruct(t *testing.T) {
	type payload struct {
		Name  *string `json:"name"  validate:"required"`
		Stock *int    `json:"stock" validate:"required"`
	}
	name := ""

	t.Run("Missing pointer field is reported by JSON name", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		ok := ValidateStruct(rr, req, discardLogger(), NewValidator(), payload{Name: &name})
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.JSONEq(t, `{"validation_errors":{"stock":"failed on rule: required"}}`, rr.Body.String())
	})

	t.Run("Present zero values pass", func(t *testing.T) {
		zero := 0
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		ok := ValidateStruct(rr, req, discardLogger(), NewValidator(), payload{Name: &name, Stock: &zero})
		assert.True(t, ok)
	})
}

func Test_RespondJSON_NilPayload(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondJSON(rr, discardLogger(), http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func Test_RequestIDInjector(t *testing.T) {
	t.Run("Reuses chi request ID", func(t *testing.T) {
		var got string
		h := middleware.RequestID(RequestIDInjector(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetRequestID(r.Context())
		})))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, "req-123", got)
		assert.Equal(t, "req-123", rr.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Generates one when missing", func(t *testing.T) {
		var got string
		h := RequestIDInjector(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetRequestID(r.Context())
		}))
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, got, 36)
	})
}

func Test_Recoverer(t *testing.T) {
	// given
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Recoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	// when
	require.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	// then
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rr.Body.String())
	assert.Contains(t, buf.String(), "Panic recovered")
	assert.Contains(t, buf.String(), `"panic":"boom"`)
	assert.Contains(t, buf.String(), `"stack":`)
}

func Test_Recoverer_AbortHandler(t *testing.T) {
	h := Recoverer(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func Test_StructuredLogger(t *testing.T) {
	testCases := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{name: "Success logs at info", status: http.StatusOK, expectedLevel: "INFO"},
		{name: "Client error logs at warn", status: http.StatusNotFound, expectedLevel: "WARN"},
		{name: "Unprocessable logs at warn", status: http.StatusUnprocessableEntity, expectedLevel: "WARN"},
		{name: "Server error logs at error", status: http.StatusInternalServerError, expectedLevel: "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			h := StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			// when
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/", nil))
			// then
			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tc.expectedLevel, entry["level"])
			assert.Equal(t, "Request completed", entry["msg"])
			assert.Equal(t, float64(tc.status), entry["status"])
			assert.Equal(t, "/products/", entry["path"])
		})
	}
}

func Test_StructuredLogger_NothingWritten(t *testing.T) {
	var buf bytes.Buffer
	h := StructuredLogger(slog.New(slog.NewJSONHandler(&buf, nil)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/products/1", nil))

	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func Test_StructuredLogger_RoutePattern(t *testing.T) {
	// given
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(StructuredLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	r.Get("/products/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	// when
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/42", nil))
	// then
	assert.Contains(t, buf.String(), `"route":"/products/{id}"`)
	assert.Contains(t, buf.String(), `"path":"/products/42"`)
}

func Test_GetRequestID(t *testing.T) {
	_, ok := GetRequestID(context.Background())
	assert.False(t, ok)

	_, ok = GetRequestID(WithRequestID(context.Background(), ""))
	assert.False(t, ok, "empty id counts as missing")

	id, ok := GetRequestID(WithRequestID(context.Background(), "req-9"))
	assert.True(t, ok)
	assert.Equal(t, "req-9", id)
}
