// internal/search/indexer_test.go
package search

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/models"
)

// ==========================
// Fake Elasticsearch
// ==========================

type fakeES struct {
	mu          sync.Mutex
	indexExists bool
	created     bool
	bulkLines   []string
	bulkStatus  int
	failIDs     map[string]bool
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/prospects":
		if f.indexExists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/prospects":
		f.created = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case r.URL.Path == "/prospects/_bulk":
		if f.bulkStatus != 0 {
			w.WriteHeader(f.bulkStatus)
			_, _ = io.WriteString(w, `{"error":"boom"}`)
			return
		}
		f.writeBulk(w, r.Body)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeES) writeBulk(w http.ResponseWriter, body io.Reader) {
	type item struct {
		ID     string                 `json:"_id"`
		Status int                    `json:"status"`
		Error  map[string]interface{} `json:"error,omitempty"`
	}
	var items []map[string]item
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for lineNo := 0; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		f.bulkLines = append(f.bulkLines, line)
		if lineNo%2 != 0 {
			continue
		}
		var meta map[string]map[string]string
		_ = json.Unmarshal([]byte(line), &meta)
		id := meta["index"]["_id"]
		it := item{ID: id, Status: http.StatusCreated}
		if f.failIDs[id] {
			it.Status = http.StatusBadRequest
			it.Error = map[string]interface{}{"type": "mapper_parsing_exception", "reason": "failed to parse"}
		}
		items = append(items, map[string]item{"index": it})
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"errors": len(f.failIDs) > 0, "items": items})
}

func newTestIndexer(t *testing.T, fake *fakeES) *Indexer {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewIndexer(client, "", logger.NewTestLogger(t))
}

func testSnapshot() *models.Snapshot {
	return &models.Snapshot{
		ID:          "snap-1",
		Mode:        models.ModeSeed,
		GeneratedAt: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		Prospects: []models.Prospect{
			{ID: 1, Name: "Sarah Chen", Org: "TechVentures Capital", Location: models.Location{City: "New York", State: "NY"}, Sectors: []string{"FinTech"}, FitScore: 92, Status: models.StatusNew},
			{ID: 2, Name: "Emily Davis", Org: "Primary Venture Partners", Location: models.Location{City: "Hoboken", State: "NJ"}, Sectors: []string{"SaaS"}, FitScore: 81, Status: models.StatusContacted},
		},
	}
}

// ==========================
// Tests
// ==========================

func TestEnsureIndex_Creates(t *testing.T) {
	fake := &fakeES{}
	ix := newTestIndexer(t, fake)

	require.NoError(t, ix.EnsureIndex(context.Background()))
	assert.True(t, fake.created)
}

func TestEnsureIndex_Exists(t *testing.T) {
	fake := &fakeES{indexExists: true}
	ix := newTestIndexer(t, fake)

	require.NoError(t, ix.EnsureIndex(context.Background()))
	assert.False(t, fake.created)
}

func TestIndexSnapshot(t *testing.T) {
	fake := &fakeES{}
	ix := newTestIndexer(t, fake)

	result, err := ix.IndexSnapshot(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Indexed)
	assert.Zero(t, result.Failed)
	assert.Equal(t, DefaultIndex, result.Index)

	require.Len(t, fake.bulkLines, 4)
	assert.JSONEq(t, `{"index":{"_id":"snap-1-1"}}`, fake.bulkLines[0])

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(fake.bulkLines[3]), &doc))
	assert.Equal(t, "snap-1", doc.SnapshotID)
	assert.Equal(t, 2, doc.ProspectID)
	assert.Equal(t, "NJ", doc.State)
	assert.Equal(t, "contacted", doc.Status)
}

func TestIndexSnapshot_ItemFailures(t *testing.T) {
	fake := &fakeES{failIDs: map[string]bool{"snap-1-2": true}}
	ix := newTestIndexer(t, fake)

	result, err := ix.IndexSnapshot(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0], "snap-1-2: mapper_parsing_exception"))
}

func TestIndexSnapshot_RequestFailure(t *testing.T) {
	fake := &fakeES{bulkStatus: http.StatusServiceUnavailable}
	ix := newTestIndexer(t, fake)

	_, err := ix.IndexSnapshot(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSearchIndexFailed, errors.Normalize(err).Code)
}

func TestIndexSnapshot_Empty(t *testing.T) {
	fake := &fakeES{}
	ix := newTestIndexer(t, fake)

	result, err := ix.IndexSnapshot(context.Background(), &models.Snapshot{ID: "empty"})
	require.NoError(t, err)
	assert.Zero(t, result.Indexed)
	assert.Empty(t, fake.bulkLines)
}
