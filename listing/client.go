package listing

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/valyala/fasthttp"

	"github.com/cazare-ro/site/cache"
	"github.com/cazare-ro/site/config"
)

// Client queries the listing search endpoint. Responses are kept in a
// short-lived read-through cache keyed by the composite query key, so
// flipping a filter back and forth does not re-fetch.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	results *cache.Cache[SearchResult]
}

// NewClient creates a listing client for the endpoint at baseURL.
func NewClient(baseURL string) (*Client, error) {
	results, err := cache.New(resultCost, "listing-results")
	if err != nil {
		return nil, fmt.Errorf("error creating result cache: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		http:    &fasthttp.Client{},
		results: results,
	}, nil
}

// Search runs one listing query and decodes the {items, total} response.
func (c *Client) Search(q Query) (SearchResult, error) {
	key := q.Key()
	if cached, ok := c.results.Get(key); ok {
		return cached, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(c.baseURL + "?" + key)

	if err := c.http.DoTimeout(req, resp, config.ListingFetchTimeout); err != nil {
		return SearchResult{}, fmt.Errorf("error querying listings: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return SearchResult{}, fmt.Errorf("listing endpoint returned status %d", resp.StatusCode())
	}

	var result SearchResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return SearchResult{}, fmt.Errorf("error decoding listing response: %w", err)
	}

	if !c.results.SetWithTTL(key, result, resultCost(result), config.ResultCacheTTL) {
		log.Printf("[listing] result cache rejected key %s", key)
	}
	return result, nil
}

// CacheStats exposes result cache counters for the health endpoint.
func (c *Client) CacheStats() map[string]interface{} {
	return c.results.Stats()
}

func resultCost(r SearchResult) int64 {
	cost := int64(1)
	for _, it := range r.Items {
		cost += int64(len(it.Title) + len(it.ID) + 64)
	}
	return cost
}
