package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
)

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Small   string `json:"small"`
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// UnsplashClient looks up photos for a keyword. Every failure degrades to an empty list.
type UnsplashClient struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

func NewUnsplashClient(accessKey, baseURL string, log logrus.FieldLogger) *UnsplashClient {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = 5 * time.Second

	if baseURL == "" {
		baseURL = "https://api.unsplash.com"
	}

	return &UnsplashClient{
		accessKey:  accessKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

func (c *UnsplashClient) Search(ctx context.Context, keyword string, count int) []string {
	if c.accessKey == "" || count <= 0 {
		return []string{}
	}

	urls, err := c.search(ctx, keyword, count)
	if err != nil {
		c.log.WithField("keyword", keyword).WithError(err).Debug("image lookup failed")
		return []string{}
	}
	return urls
}

func (c *UnsplashClient) search(ctx context.Context, keyword string, count int) ([]string, error) {
	q := url.Values{}
	q.Set("query", keyword)
	q.Set("per_page", strconv.Itoa(count))
	q.Set("orientation", "squarish")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Unsplash API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Unsplash API returned status %d", resp.StatusCode)
	}

	var body unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	urls := make([]string, 0, count)
	for _, r := range body.Results {
		if len(urls) == count {
			break
		}
		u := r.URLs.Small
		if u == "" {
			u = r.URLs.Regular
		}
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
