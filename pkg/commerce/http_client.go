package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// HTTPConfig configures the HTTP commerce client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads collections from the commerce REST API
// (GET {base}/{collection}).
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client for the live commerce API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("commerce: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

var _ Client = (*HTTPClient)(nil)

// FetchCollection implements Client. The endpoint may answer with a bare
// array or with a {"data": [...]} envelope.
func (c *HTTPClient) FetchCollection(ctx context.Context, collection string) ([]listview.Record, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return nil, errors.New("commerce: collection is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(collection), nil)
	if err != nil {
		return nil, fmt.Errorf("commerce: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("commerce: http request: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("commerce: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, &RemoteError{Collection: collection, Status: resp.StatusCode, Body: strings.TrimSpace(buf.String())}
	}
	records, err := DecodeRecords(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("commerce: decode %s: %w", collection, err)
	}
	return records, nil
}

// RemoteError is returned when the API answers with a non 2xx status.
type RemoteError struct {
	Collection string
	Status     int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("commerce: remote error %d for %s: %s", e.Status, e.Collection, e.Body)
}

type envelope struct {
	Data []listview.Record `json:"data"`
}

// DecodeRecords parses a JSON array of records or a {"data": [...]}
// envelope. Numbers are kept as json.Number.
func DecodeRecords(body []byte) ([]listview.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []listview.Record{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if trimmed[0] == '[' {
		var records []listview.Record
		if err := dec.Decode(&records); err != nil {
			return nil, err
		}
		return nonNil(records), nil
	}
	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, err
	}
	return nonNil(env.Data), nil
}

func nonNil(records []listview.Record) []listview.Record {
	if records == nil {
		return []listview.Record{}
	}
	return records
}
