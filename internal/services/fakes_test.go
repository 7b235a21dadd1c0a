package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"yatra/internal/models/db_models"
	"yatra/pkg/utils"
)

// scriptedClient replays canned model outputs in order.
type scriptedClient struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	requests  []utils.GenerationRequest
}

func (c *scriptedClient) GenerateJSON(_ context.Context, req utils.GenerationRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := len(c.requests)
	c.requests = append(c.requests, req)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", nil
}

func (c *scriptedClient) Provider() string { return "scripted" }

func (c *scriptedClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// fakeImageSearch returns hits per query, or a generic hit when byQuery has no entry.
type fakeImageSearch struct {
	mu      sync.Mutex
	byQuery map[string][]utils.ImageHit
	err     error
	empty   bool
	queries []string
}

func (f *fakeImageSearch) SearchImages(_ context.Context, query string, _ int) ([]utils.ImageHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if hits, ok := f.byQuery[query]; ok {
		return hits, nil
	}
	if f.empty {
		return nil, nil
	}
	slug := strings.ReplaceAll(query, " ", "-")
	return []utils.ImageHit{{
		Title:     query,
		Link:      "https://img.example/" + slug + ".jpg",
		Thumbnail: "https://img.example/thumb/" + slug + ".jpg",
		Context:   "https://example.com/" + slug,
	}}, nil
}

type fakeRepo struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*db_models.Itinerary
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[uuid.UUID]*db_models.Itinerary{}}
}

func (r *fakeRepo) CreateItinerary(_ context.Context, record *db_models.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.UpdatedAt = utils.NowUnixSeconds()
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeRepo) GetItineraryByID(_ context.Context, id uuid.UUID) (*db_models.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (r *fakeRepo) MergeProvider(_ context.Context, id uuid.UUID, key string, payload json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return utils.ErrItineraryNotFound
	}
	providers := map[string]json.RawMessage{}
	if record.Providers != "" {
		if err := json.Unmarshal([]byte(record.Providers), &providers); err != nil {
			return err
		}
	}
	providers[key] = payload
	encoded, err := json.Marshal(providers)
	if err != nil {
		return err
	}
	record.Providers = string(encoded)
	return nil
}

func (r *fakeRepo) providers(id uuid.UUID) map[string]json.RawMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]json.RawMessage{}
	if record, ok := r.records[id]; ok {
		_ = json.Unmarshal([]byte(record.Providers), &out)
	}
	return out
}

var errUpstream = errors.New("upstream unavailable")
