package http

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	charsetpkg "golang.org/x/net/html/charset"
)

// Client represents an HTTP client with configuration options.
type Client struct {
	baseURL            string
	client             *http.Client
	defaultHeaders     map[string]string
	defaultContentType string
	backoff            *BackoffConfig
	logger             HTTPLogger
}

// ClientOptions represents the configuration options for the HTTP client.
type ClientOptions struct {
	// FollowRedirect lets the transport follow 3xx responses; 307 and 308 keep the body.
	FollowRedirect      bool
	DefaultHeaders      map[string]string
	DefaultContentType  string
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	ConnectionTimeout   time.Duration
	ReadTimeout         time.Duration
	// Backoff is the default retry policy; nil disables retries.
	Backoff *BackoffConfig
	// Logger receives request/response events; nil disables them.
	Logger HTTPLogger
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status %d: %s", e.StatusCode, e.Body)
}

const maxErrorBody = 512

// NewHttpClient creates a new HTTP client with the given base URL and configuration options.
func NewHttpClient(baseURL string, opts ClientOptions) *Client {
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 200
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 20
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}
	if opts.ConnectionTimeout == 0 {
		opts.ConnectionTimeout = 60 * time.Second
	}
	if opts.DefaultContentType == "" {
		opts.DefaultContentType = "application/json"
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     opts.IdleConnTimeout,
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectionTimeout,
		}).DialContext,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.ReadTimeout,
	}

	if !opts.FollowRedirect {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		client:             client,
		defaultHeaders:     opts.DefaultHeaders,
		defaultContentType: opts.DefaultContentType,
		backoff:            opts.Backoff,
		logger:             opts.Logger,
	}
}

// Request creates a new Request object for the client.
func (hc *Client) Request() *Request {
	return NewHttpClientRequest(hc)
}

// exchange is one executed round trip.
type exchange struct {
	url         string
	headers     map[string]string
	requestBody []byte
	status      int
	body        []byte
	successResp any
	errorResp   any
}

// doRequest sends one HTTP request and decodes the response into successResp or errorResp.
func (hc *Client) doRequest(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any) (*exchange, error) {
	ex := &exchange{url: hc.buildURL(path)}
	if len(queryParams) > 0 {
		ex.url += "?" + buildQueryString(queryParams)
	}

	payload, contentType, err := hc.encodeBody(body)
	if err != nil {
		return ex, err
	}
	ex.requestBody = payload

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, ex.url, bodyReader)
	if err != nil {
		return ex, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range hc.defaultHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	ex.headers = flattenHeaders(req.Header)

	if hc.logger != nil {
		hc.logger.LogRequest(method, ex.url, ex.headers, string(payload))
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return ex, err
	}
	defer func() { _ = resp.Body.Close() }()

	ex.status = resp.StatusCode
	ex.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return ex, err
	}

	respContentType := resp.Header.Get("Content-Type")
	if respContentType == "" {
		respContentType = hc.defaultContentType
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if successResp != nil {
			if err = hc.unmarshalResponse(ex.body, respContentType, successResp); err != nil {
				return ex, fmt.Errorf("failed to decode response: %w", err)
			}
		}
		ex.successResp = successResp
		return ex, nil
	}

	if errorResp != nil && hc.unmarshalResponse(ex.body, respContentType, errorResp) == nil {
		ex.errorResp = errorResp
	}

	return ex, &StatusError{StatusCode: resp.StatusCode, Body: excerpt(ex.body)}
}

// encodeBody serializes the request body according to its type and the client's default content type.
func (hc *Client) encodeBody(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	switch body := body.(type) {
	case string:
		return []byte(body), "text/plain", nil
	case []byte:
		return body, "application/octet-stream", nil
	case url.Values:
		return []byte(body.Encode()), "application/x-www-form-urlencoded", nil
	}

	switch hc.defaultContentType {
	case "application/xml":
		xmlBody, err := xml.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body to XML: %w", err)
		}
		return xmlBody, "application/xml", nil
	case "text/plain":
		return []byte(fmt.Sprintf("%v", body)), "text/plain", nil
	default:
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body to JSON: %w", err)
		}
		return jsonBody, "application/json", nil
	}
}

// unmarshalResponse unmarshals response body based on content type
func (hc *Client) unmarshalResponse(bodyBytes []byte, contentType string, target any) error {
	// Extract the main content type (remove charset and other parameters)
	mainContentType := strings.TrimSpace(strings.Split(contentType, ";")[0])

	switch {
	case mainContentType == "application/xml", mainContentType == "text/xml", strings.HasSuffix(mainContentType, "+xml"):
		dec := xml.NewDecoder(bytes.NewReader(bodyBytes))
		dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			return charsetpkg.NewReaderLabel(charset, input)
		}
		return dec.Decode(target)
	case mainContentType == "text/plain":
		if strPtr, ok := target.(*string); ok {
			*strPtr = string(bodyBytes)
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	case mainContentType == "application/octet-stream":
		if bytePtr, ok := target.(*[]byte); ok {
			*bytePtr = bodyBytes
			return nil
		}
		return json.Unmarshal(bodyBytes, target)
	default:
		// application/json, application/sparql-results+json and unknown types
		return json.Unmarshal(bodyBytes, target)
	}
}

// buildURL builds a normalized URL by properly handling baseURL and path
func (hc *Client) buildURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path == "/" {
		path = ""
	}
	return strings.TrimRight(hc.baseURL, "/") + path
}

// buildQueryString builds an encoded query string from parameters, sorted by key
func buildQueryString(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}

func flattenHeaders(header http.Header) map[string]string {
	flat := make(map[string]string, len(header))
	for key := range header {
		flat[key] = header.Get(key)
	}
	return flat
}

func excerpt(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		return text[:maxErrorBody] + "..."
	}
	return text
}
