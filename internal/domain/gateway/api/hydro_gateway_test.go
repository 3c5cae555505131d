package api

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lindas-hydro/pkg/http"
)

const sparqlJSON = `{"head":{"vars":["subject","predicate","object"]},"results":{"bindings":[
{"subject":{"type":"uri","value":"https://environment.ld.admin.ch/foen/hydro/river/observation/2044"},
 "predicate":{"type":"uri","value":"https://environment.ld.admin.ch/foen/hydro/dimension/station"},
 "object":{"type":"uri","value":"https://environment.ld.admin.ch/foen/hydro/station/2044"}}]}}`

const sparqlXML = `<?xml version="1.0"?>
<sparql xmlns="http://www.w3.org/2005/sparql-results#">
  <head><variable name="predicate"/><variable name="object"/></head>
  <results>
    <result>
      <binding name="predicate"><uri>https://environment.ld.admin.ch/foen/hydro/dimension/discharge</uri></binding>
      <binding name="object"><literal>12.5</literal></binding>
    </result>
  </results>
</sparql>`

const testQuery = "SELECT ?subject ?predicate ?object WHERE { ?subject ?predicate ?object }"

func fastOptions() http.ClientOptions {
	return http.ClientOptions{
		ReadTimeout: 5 * time.Second,
		Backoff:     &http.BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond},
	}
}

func TestFetchObservations_JSON(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "application/sparql-results+json", r.Header.Get("Accept"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, testQuery, r.PostForm.Get("query"))

		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = io.WriteString(w, sparqlJSON)
	}))
	defer server.Close()

	gateway := NewHydroGateway(server.URL, FormatJSON, fastOptions())
	results, err := gateway.FetchObservations(context.Background(), testQuery)

	require.NoError(t, err)
	require.Len(t, results.Bindings, 1)
	assert.Equal(t, "https://environment.ld.admin.ch/foen/hydro/station/2044", results.Bindings[0]["object"].Value)
}

func TestFetchObservations_XML(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "application/sparql-results+xml", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/sparql-results+xml; charset=utf-8")
		_, _ = io.WriteString(w, sparqlXML)
	}))
	defer server.Close()

	gateway := NewHydroGateway(server.URL, FormatXML, fastOptions())
	results, err := gateway.FetchObservations(context.Background(), testQuery)

	require.NoError(t, err)
	assert.Equal(t, []string{"predicate", "object"}, results.Vars)
	require.Len(t, results.Bindings, 1)
	assert.Equal(t, "12.5", results.Bindings[0]["object"].Value)
}

func TestFetchObservations_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(nethttp.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = io.WriteString(w, sparqlJSON)
	}))
	defer server.Close()

	gateway := NewHydroGateway(server.URL, FormatJSON, fastOptions())
	results, err := gateway.FetchObservations(context.Background(), testQuery)

	require.NoError(t, err)
	assert.Len(t, results.Bindings, 1)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchObservations_BadQuery(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusBadRequest)
		_, _ = io.WriteString(w, "Parse error")
	}))
	defer server.Close()

	gateway := NewHydroGateway(server.URL, FormatJSON, fastOptions())
	_, err := gateway.FetchObservations(context.Background(), "SELECT")

	var statusErr *http.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, nethttp.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "Parse error")
}

func TestFetchObservations_FollowsRedirect(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/query" {
			nethttp.Redirect(w, r, "/query", nethttp.StatusTemporaryRedirect)
			return
		}
		require.NoError(t, r.ParseForm())
		assert.Equal(t, testQuery, r.PostForm.Get("query"))
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = io.WriteString(w, sparqlJSON)
	}))
	defer server.Close()

	options := fastOptions()
	options.FollowRedirect = true
	results, err := NewHydroGateway(server.URL, FormatJSON, options).FetchObservations(context.Background(), testQuery)

	require.NoError(t, err)
	assert.Len(t, results.Bindings, 1)
}

func TestParseResultFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ResultFormat
		wantErr bool
	}{
		{in: "", want: FormatJSON},
		{in: "JSON", want: FormatJSON},
		{in: " xml ", want: FormatXML},
		{in: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResultFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
