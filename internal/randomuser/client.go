package randomuser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vytor/userdirectory/internal/logger"
	"github.com/vytor/userdirectory/internal/models"
)

const maxBodyBytes = 4 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a client for the API rooted at baseURL, e.g. https://randomuser.me/api/.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRequest selects how many profiles to fetch and, optionally, which
// nationalities they are drawn from.
type FetchRequest struct {
	Count         int
	Nationalities []string
}

func (c *Client) requestURL(req FetchRequest) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("results", strconv.Itoa(req.Count))
	if len(req.Nationalities) > 0 {
		q.Set("nat", strings.Join(req.Nationalities, ","))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchProfiles performs one GET against the API and decodes the results in
// the order the API returned them.
func (c *Client) FetchProfiles(ctx context.Context, fr FetchRequest) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("randomuser").WithField("count", fr.Count)

	target, err := c.requestURL(fr)
	if err != nil {
		log.Error("failed to build request url: %v", err)
		return nil, err
	}

	log.Debug("fetching profiles from: %s", target)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch profiles: %v", err)
		return nil, fmt.Errorf("fetch profiles: %w", err)
	}
	defer resp.Body.Close()

	log.Debug("profiles response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("profiles request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("profiles status %d: %s", resp.StatusCode, string(body))
	}

	var payload response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		log.Error("failed to decode profiles response: %v", err)
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	if payload.Error != "" {
		log.Error("profiles api reported an error: %s", payload.Error)
		return nil, fmt.Errorf("profiles api: %s", payload.Error)
	}

	profiles := make([]models.Profile, 0, len(payload.Results))
	for _, u := range payload.Results {
		profiles = append(profiles, u.toProfile())
	}

	log.Info("fetched %d profiles", len(profiles))
	return profiles, nil
}
