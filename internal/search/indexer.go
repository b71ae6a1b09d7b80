// internal/search/indexer.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"prospect-dashboard/internal/common/errors"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/models"
)

const DefaultIndex = "prospects"

// indexMapping keeps the filterable fields as keywords so downstream
// dashboards can aggregate on them.
const indexMapping = `{
  "mappings": {
    "properties": {
      "snapshotId":  {"type": "keyword"},
      "prospectId":  {"type": "integer"},
      "name":        {"type": "text"},
      "org":         {"type": "text"},
      "email":       {"type": "keyword"},
      "state":       {"type": "keyword"},
      "city":        {"type": "keyword"},
      "sectors":     {"type": "keyword"},
      "status":      {"type": "keyword"},
      "fitScore":    {"type": "integer"},
      "generatedAt": {"type": "date"}
    }
  }
}`

// Document is the indexed form of one prospect.
type Document struct {
	SnapshotID  string    `json:"snapshotId"`
	ProspectID  int       `json:"prospectId"`
	Name        string    `json:"name"`
	Org         string    `json:"org"`
	Email       string    `json:"email"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Sectors     []string  `json:"sectors"`
	Status      string    `json:"status"`
	FitScore    int       `json:"fitScore"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type IndexResult struct {
	Index   string   `json:"index"`
	Indexed int      `json:"indexed"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// Indexer bulk-loads snapshots into Elasticsearch.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	if index == "" {
		index = DefaultIndex
	}
	return &Indexer{client: client, index: index, logger: log}
}

// DocumentFor flattens a prospect for indexing.
func DocumentFor(snap *models.Snapshot, p *models.Prospect) Document {
	return Document{
		SnapshotID:  snap.ID,
		ProspectID:  p.ID,
		Name:        p.Name,
		Org:         p.Org,
		Email:       p.Email,
		City:        p.Location.City,
		State:       p.Location.State,
		Sectors:     p.Sectors,
		Status:      string(p.Status),
		FitScore:    p.FitScore,
		GeneratedAt: snap.GeneratedAt,
	}
}

func documentID(snapshotID string, prospectID int) string {
	return snapshotID + "-" + strconv.Itoa(prospectID)
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (ix *Indexer) EnsureIndex(ctx context.Context) error {
	res, err := ix.client.Indices.Exists([]string{ix.index}, ix.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return errors.NewSearchIndexFailedError(fmt.Errorf("check index: %w", err))
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return errors.NewSearchIndexFailedError(fmt.Errorf("check index: %s", res.Status()))
	}

	res, err = ix.client.Indices.Create(ix.index,
		ix.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
		ix.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return errors.NewSearchIndexFailedError(fmt.Errorf("create index: %w", err))
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return errors.NewSearchIndexFailedError(fmt.Errorf("create index: %s: %s", res.Status(), body))
	}

	ix.logger.Info("Created search index", map[string]interface{}{"index": ix.index})
	return nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// IndexSnapshot writes every prospect of snap in one bulk request. Item
// failures are reported in the result, not as an error.
func (ix *Indexer) IndexSnapshot(ctx context.Context, snap *models.Snapshot) (*IndexResult, error) {
	result := &IndexResult{Index: ix.index}
	if len(snap.Prospects) == 0 {
		return result, nil
	}

	body, err := encodeBulk(snap)
	if err != nil {
		return nil, errors.NewSearchIndexFailedError(err)
	}

	res, err := ix.client.Bulk(bytes.NewReader(body),
		ix.client.Bulk.WithIndex(ix.index),
		ix.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return nil, errors.NewSearchIndexFailedError(fmt.Errorf("bulk request: %w", err))
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, errors.NewSearchIndexFailedError(fmt.Errorf("bulk request: %s: %s", res.Status(), raw))
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return nil, errors.NewSearchIndexFailedError(fmt.Errorf("decode bulk response: %w", err))
	}

	for _, item := range br.Items {
		for _, op := range item {
			if op.Status > 299 {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s: %s", op.ID, op.Error.Type, op.Error.Reason))
			} else {
				result.Indexed++
			}
		}
	}

	fields := map[string]interface{}{
		"index":      ix.index,
		"snapshotId": snap.ID,
		"indexed":    result.Indexed,
	}
	if result.Failed > 0 {
		fields["failed"] = result.Failed
		ix.logger.Warn("Bulk indexing finished with failures", fields)
	} else {
		ix.logger.Info("Indexed snapshot", fields)
	}
	return result, nil
}

func encodeBulk(snap *models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range snap.Prospects {
		p := &snap.Prospects[i]
		meta := map[string]map[string]string{"index": {"_id": documentID(snap.ID, p.ID)}}
		if err := enc.Encode(meta); err != nil {
			return nil, fmt.Errorf("encode bulk meta: %w", err)
		}
		if err := enc.Encode(DocumentFor(snap, p)); err != nil {
			return nil, fmt.Errorf("encode document %d: %w", p.ID, err)
		}
	}
	return buf.Bytes(), nil
}
