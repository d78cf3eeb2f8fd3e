package commerce

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
)

// ErrUnknownCollection is returned by MockClient for collections it has no
// fixtures for.
var ErrUnknownCollection = errors.New("commerce: unknown collection")

// MockData seeds deterministic collections for tests or local demos.
type MockData map[string][]listview.Record

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	mu   sync.RWMutex
	data MockData
}

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	c := &MockClient{data: MockData{}}
	for collection, records := range data {
		c.data[collection] = cloneRecords(records)
	}
	return c
}

var _ Client = (*MockClient)(nil)

// FetchCollection returns a copy of the stored records.
func (c *MockClient) FetchCollection(_ context.Context, collection string) ([]listview.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records, ok := c.data[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return cloneRecords(records), nil
}

// Put replaces the records of a collection.
func (c *MockClient) Put(collection string, records []listview.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[collection] = cloneRecords(records)
}

// Append adds one record to a collection.
func (c *MockClient) Append(collection string, record listview.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[collection] = append(c.data[collection], maps.Clone(record))
}

// cloneRecords copies the slice and each top-level map. Nested values are
// shared; callers treat records as read-only.
func cloneRecords(records []listview.Record) []listview.Record {
	out := make([]listview.Record, len(records))
	for i, record := range records {
		out[i] = maps.Clone(record)
	}
	return out
}
