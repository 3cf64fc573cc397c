package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v7"
)

type ElasticsearchConfig struct {
	Host  string
	Port  int
	Index string
	Size  int
}

// GazetteerEntry is the document shape of the gazetteer index, one entry per
// populated place (GeoNames style).
type GazetteerEntry struct {
	Name       string  `json:"name"`
	AsciiName  string  `json:"ascii_name"`
	AdminName  string  `json:"admin_name"`
	Country    string  `json:"country"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Importance float64 `json:"importance"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64        `json:"_score"`
			Source GazetteerEntry `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// NewElasticsearchClient returns a Client backed by a gazetteer index.
func NewElasticsearchClient(conf ElasticsearchConfig) (Client, error) {
	c, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("http://%s:%d", conf.Host, conf.Port)},
	})
	if err != nil {
		return nil, err
	}
	if conf.Size <= 0 {
		conf.Size = 3
	}
	return &esClient{
		Client: c,
		conf:   conf,
	}, nil
}

type esClient struct {
	*elasticsearch.Client
	conf ElasticsearchConfig
}

func (e *esClient) Ready() bool {
	res, err := e.Info()
	if err != nil || res.StatusCode != 200 {
		return false
	}
	return true
}

func (e *esClient) Lookup(ctx context.Context, query string) ([]Result, error) {
	body := map[string]interface{}{
		"size": e.conf.Size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []map[string]interface{}{
					{"term": map[string]interface{}{"name.keyword": query}},
					{"match": map[string]interface{}{
						"ascii_name": map[string]interface{}{
							"query":     query,
							"fuzziness": "AUTO",
						},
					}},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := e.Search(
		e.Search.WithContext(ctx),
		e.Search.WithIndex(e.conf.Index),
		e.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, res.StatusCode)
	}

	var searchResponse esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	results := make([]Result, 0, len(searchResponse.Hits.Hits))
	for _, hit := range searchResponse.Hits.Hits {
		entry := hit.Source

		placeName := entry.Name
		if entry.AdminName != "" {
			placeName += ", " + entry.AdminName
		}
		if entry.Country != "" {
			placeName += ", " + entry.Country
		}

		results = append(results, Result{
			PlaceName:  placeName,
			Latitude:   entry.Latitude,
			Longitude:  entry.Longitude,
			Confidence: entry.Importance,
			Exact:      strings.EqualFold(entry.Name, query) || strings.EqualFold(entry.AsciiName, query),
		})
	}

	return results, nil
}
