// internal/listings/elasticsearch.go
package listings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"rental-investment-workers/internal/models"
	"rental-investment-workers/internal/rentestimate"
)

var ErrMissingIndex = errors.New("index name is required")

// IndexMapping types the fields the comparables query filters on.
const IndexMapping = `{
  "mappings": {
    "properties": {
      "zpid": {"type": "keyword"},
      "address": {"type": "text"},
      "city": {"type": "keyword"},
      "state": {"type": "keyword"},
      "zipCode": {"type": "keyword"},
      "propertyType": {"type": "keyword"},
      "price": {"type": "double"},
      "bedrooms": {"type": "double"},
      "bathrooms": {"type": "double"},
      "squareFootage": {"type": "double"},
      "latitude": {"type": "double"},
      "longitude": {"type": "double"},
      "rentZestimate": {"type": "double"},
      "customRentEstimate": {"type": "double"},
      "rentToValueRatio": {"type": "double"},
      "lastUpdated": {"type": "date"}
    }
  }
}`

// ElasticsearchStore indexes listings as documents keyed by zpid and serves
// comparable lookups from the index.
type ElasticsearchStore struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchStore(client *elasticsearch.Client, index string) (*ElasticsearchStore, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}
	return &ElasticsearchStore{client: client, index: index}, nil
}

// EnsureIndex creates the index with IndexMapping when it does not exist.
func (s *ElasticsearchStore) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{s.index}}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("check index %s: %w", s.index, err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{
		Index: s.index,
		Body:  strings.NewReader(IndexMapping),
	}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("create index %s: %w", s.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index %s: %s", s.index, res.String())
	}
	return nil
}

func (s *ElasticsearchStore) Upsert(ctx context.Context, l *models.Listing) error {
	body, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal listing %s: %w", l.Zpid, err)
	}

	res, err := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: l.Zpid,
		Body:       bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("index listing %s: %w", l.Zpid, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index listing %s: %s", l.Zpid, res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Listing `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// FindComparables runs the comparable box as a bool filter query.
func (s *ElasticsearchStore) FindComparables(ctx context.Context, q rentestimate.ComparableQuery) ([]rentestimate.ComparableListing, error) {
	size := q.Limit
	if size <= 0 {
		size = rentestimate.MaxComparables
	}

	body, err := json.Marshal(buildComparablesQuery(q, size))
	if err != nil {
		return nil, fmt.Errorf("marshal comparables query: %w", err)
	}

	res, err := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("search comparables: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search comparables: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode comparables response: %w", err)
	}

	out := make([]rentestimate.ComparableListing, 0, len(r.Hits.Hits))
	for i := range r.Hits.Hits {
		if c, ok := toComparable(&r.Hits.Hits[i].Source); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func buildComparablesQuery(q rentestimate.ComparableQuery, size int) map[string]interface{} {
	between := func(field string, lo, hi float64) map[string]interface{} {
		return map[string]interface{}{
			"range": map[string]interface{}{
				field: map[string]interface{}{"gte": lo, "lte": hi},
			},
		}
	}
	positive := func(field string) map[string]interface{} {
		return map[string]interface{}{
			"range": map[string]interface{}{field: map[string]interface{}{"gt": 0}},
		}
	}

	boolQuery := map[string]interface{}{
		"filter": []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"propertyType": q.PropertyType}},
			between("latitude", q.MinLatitude, q.MaxLatitude),
			between("longitude", q.MinLongitude, q.MaxLongitude),
			between("bedrooms", q.MinBedrooms, q.MaxBedrooms),
			between("bathrooms", q.MinBathrooms, q.MaxBathrooms),
			between("squareFootage", q.MinSqft, q.MaxSqft),
			map[string]interface{}{
				"bool": map[string]interface{}{
					"should":               []interface{}{positive("rentZestimate"), positive("customRentEstimate")},
					"minimum_should_match": 1,
				},
			},
		},
	}
	if q.ExcludeID != "" {
		boolQuery["must_not"] = []interface{}{
			map[string]interface{}{"term": map[string]interface{}{"zpid": q.ExcludeID}},
		}
	}

	return map[string]interface{}{
		"size":  size,
		"query": map[string]interface{}{"bool": boolQuery},
	}
}
