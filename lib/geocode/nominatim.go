package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/radixplore/geolocation/lib"
)

type NominatimConfig struct {
	Url       string
	UserAgent string `mapstructure:"user_agent"`
	Limit     int
}

// NewNominatimClient returns a Client backed by a Nominatim search endpoint.
func NewNominatimClient(conf NominatimConfig) Client {
	if conf.Limit <= 0 {
		conf.Limit = 3
	}
	return &nominatim{
		conf:       conf,
		httpClient: http.DefaultClient,
	}
}

type nominatim struct {
	conf       NominatimConfig
	httpClient lib.HttpClient
}

type nominatimResult struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

func (n *nominatim) searchUrl(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(n.conf.Limit))
	return n.conf.Url + "?" + params.Encode()
}

func (n *nominatim) Lookup(ctx context.Context, query string) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.searchUrl(query), nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", n.conf.UserAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var nominatimResults []nominatimResult
	if err := json.Unmarshal(b, &nominatimResults); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	results := make([]Result, 0, len(nominatimResults))
	for _, nr := range nominatimResults {
		lat, latErr := strconv.ParseFloat(nr.Lat, 64)
		lon, lonErr := strconv.ParseFloat(nr.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		confidence := nr.Importance
		if confidence < 0 {
			confidence = 0
		} else if confidence > 1 {
			confidence = 1
		}

		results = append(results, Result{
			PlaceName:  nr.DisplayName,
			Latitude:   lat,
			Longitude:  lon,
			Confidence: confidence,
			Exact:      strings.EqualFold(nr.Name, query),
		})
	}

	return results, nil
}

func (n *nominatim) Ready() bool {
	return n.conf.Url != ""
}
