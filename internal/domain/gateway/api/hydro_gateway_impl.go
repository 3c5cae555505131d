package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"lindas-hydro/internal/domain/model/external"
	"lindas-hydro/pkg/http"
)

type ResultFormat string

const (
	FormatJSON ResultFormat = "json"
	FormatXML  ResultFormat = "xml"
)

// ParseResultFormat accepts "json" or "xml", case-insensitively.
func ParseResultFormat(value string) (ResultFormat, error) {
	switch ResultFormat(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return "", fmt.Errorf("unsupported SPARQL result format %q", value)
	}
}

func (f ResultFormat) mediaType() string {
	if f == FormatXML {
		return "application/sparql-results+xml"
	}
	return "application/sparql-results+json"
}

// hydroGatewayImpl implements the HydroGateway interface
type hydroGatewayImpl struct {
	httpClient *http.Client
	format     ResultFormat
}

// NewHydroGateway creates a new instance of HydroGateway posting to endpoint
func NewHydroGateway(endpoint string, format ResultFormat, clientOptions http.ClientOptions) HydroGateway {
	return &hydroGatewayImpl{
		httpClient: http.NewHttpClient(endpoint, clientOptions),
		format:     format,
	}
}

func (g *hydroGatewayImpl) FetchObservations(ctx context.Context, query string) (*external.ResultSet, error) {
	request := g.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.POST).
		WithPath("/").
		WithHeaders(map[string]string{"Accept": g.format.mediaType()}).
		WithBody(url.Values{"query": {query}})

	if g.format == FormatXML {
		successResp, _, _, err := request.WithSuccessResp(&external.XMLResults{}).Execute()
		if err != nil {
			return nil, fmt.Errorf("sparql query failed: %w", err)
		}
		results, ok := successResp.(*external.XMLResults)
		if !ok || results == nil {
			return nil, fmt.Errorf("sparql query returned no results document")
		}
		return results.ResultSet(), nil
	}

	successResp, _, _, err := request.WithSuccessResp(&external.JSONResults{}).Execute()
	if err != nil {
		return nil, fmt.Errorf("sparql query failed: %w", err)
	}
	results, ok := successResp.(*external.JSONResults)
	if !ok || results == nil {
		return nil, fmt.Errorf("sparql query returned no results document")
	}
	return results.ResultSet(), nil
}
