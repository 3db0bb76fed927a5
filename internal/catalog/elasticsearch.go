// internal/catalog/elasticsearch.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"site-advisor/internal/common/errors"
	"site-advisor/internal/common/logger"
	"site-advisor/internal/geo"
	"site-advisor/internal/models"
)

// searchPageSize bounds one scroll-free fetch; a regional catalog stays
// well below this.
const searchPageSize = 10000

// ElasticCatalog loads resource snapshots from an Elasticsearch index.
type ElasticCatalog struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticCatalog(client *elasticsearch.Client, index string, log logger.Logger) *ElasticCatalog {
	return &ElasticCatalog{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "catalog.elasticsearch"}),
	}
}

type esResourceDoc struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Location struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"location"`
	Magnitude float64 `json:"magnitude"`
	Region    string  `json:"region"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source esResourceDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Query fetches every resource document for the region with a single
// term-filtered search.
func (c *ElasticCatalog) Query(ctx context.Context, region string) (*models.ResourceSnapshot, error) {
	region = strings.TrimSpace(region)

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"region": strings.ToLower(region)},
					},
				},
			},
		},
	}

	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(region, fmt.Errorf("marshal query: %w", err))
	}

	size := searchPageSize
	req := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, errors.NewCatalogQueryFailedError(region, fmt.Errorf("search: %w", err))
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewCatalogQueryFailedError(region, fmt.Errorf("search error: %s", res.Status()))
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewCatalogQueryFailedError(region, fmt.Errorf("decode response: %w", err))
	}

	snapshot := newSnapshot(region)
	for _, hit := range parsed.Hits.Hits {
		doc := hit.Source
		category := models.Category(doc.Category)
		if !category.Valid() {
			c.logger.Warn("skipping resource with unknown category", map[string]interface{}{
				"id":       doc.ID,
				"category": doc.Category,
			})
			continue
		}

		magnitude := doc.Magnitude
		if magnitude < 0 {
			magnitude = 0
		}

		snapshot.Resources[category] = append(snapshot.Resources[category], models.ResourcePoint{
			ID:        doc.ID,
			Category:  category,
			Name:      doc.Name,
			Location:  geo.Coordinate{Lng: doc.Location.Lon, Lat: doc.Location.Lat},
			Magnitude: magnitude,
		})
	}

	c.logger.Debug("catalog snapshot loaded", map[string]interface{}{
		"region": region,
		"hits":   len(parsed.Hits.Hits),
	})

	return snapshot, nil
}
