package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// processingMarker is stored while the first request for a key is in flight
const processingMarker = "processing"

var ErrInFlight = errors.New("request with this key is still processing")

// StoredResponse is a replayable HTTP response
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// ResponseStore keeps replayable responses under a key prefix
type ResponseStore struct {
	prefix string
}

var (
	getResponseValue   = Get
	setResponseValue   = Set
	setNXResponseValue = SetNX
	delResponseValue   = Del
)

// NewResponseStore creates a store whose keys are namespaced by prefix
func NewResponseStore(prefix string) *ResponseStore {
	return &ResponseStore{prefix: prefix}
}

func (s *ResponseStore) key(k string) string {
	return s.prefix + ":" + k
}

// Lookup returns the stored response for k, nil if none exists, or
// ErrInFlight while another request holds the key.
func (s *ResponseStore) Lookup(ctx context.Context, k string) (*StoredResponse, error) {
	val, err := getResponseValue(ctx, s.key(k))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	if val == processingMarker {
		return nil, ErrInFlight
	}

	var resp StoredResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Acquire marks k as in flight for lockFor; false means someone else holds it
func (s *ResponseStore) Acquire(ctx context.Context, k string, lockFor time.Duration) (bool, error) {
	return setNXResponseValue(ctx, s.key(k), processingMarker, lockFor)
}

// Save stores resp under k for retention
func (s *ResponseStore) Save(ctx context.Context, k string, resp *StoredResponse, retention time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return setResponseValue(ctx, s.key(k), data, retention)
}

// Release drops k so the request can be retried
func (s *ResponseStore) Release(ctx context.Context, k string) error {
	return delResponseValue(ctx, s.key(k))
}
