package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/inovacc/pokedex/internal/model"
)

const (
	// DefaultBaseURL is the PokeAPI pokemon collection endpoint.
	DefaultBaseURL = "https://pokeapi.co/api/v2/pokemon"

	defaultTimeout = 30 * time.Second
)

// Client fetches pokemon records and sprite images.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// ClientOptions configures a Client
type ClientOptions struct {
	BaseURL string
	Timeout time.Duration

	// RateLimit is requests per second; 0 disables pacing
	RateLimit float64

	// HTTPClient overrides the default client, Timeout is then ignored
	HTTPClient *http.Client

	Logger *slog.Logger
}

// NewClient creates a new PokeAPI client
func NewClient(opts ClientOptions) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}

	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return c, nil
}

// NewFromConfig creates a client from the api section of the configuration.
func NewFromConfig(cfg model.APIConfig, logger *slog.Logger) (*Client, error) {
	return NewClient(ClientOptions{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
}

// BaseURL returns the collection endpoint the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PokemonURL returns {base}/{id}.
func (c *Client) PokemonURL(id int) (string, error) {
	return url.JoinPath(c.baseURL, strconv.Itoa(id))
}

// FetchPokemon performs a single GET for id and decodes the record.
func (c *Client) FetchPokemon(ctx context.Context, id int) (*model.Pokemon, error) {
	fetchURL, err := c.PokemonURL(id)
	if err != nil {
		return nil, fmt.Errorf("building url for %d: %w", id, err)
	}

	body, err := c.get(ctx, fetchURL)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = body.Close()
	}()

	var resp pokemonResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, &DecodeError{URL: fetchURL, Err: err}
	}

	p, err := resp.toModel()
	if err != nil {
		return nil, &DecodeError{URL: fetchURL, Err: err}
	}

	c.logger.Debug("fetched pokemon",
		slog.Int("id", p.ID),
		slog.String("name", p.Name),
	)

	return p, nil
}

// FetchImage downloads raw image bytes with the same status policy as FetchPokemon.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	body, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = body.Close()
	}()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &TransportError{URL: imageURL, Err: err}
	}

	return data, nil
}

// get issues the request and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, target string) (io.ReadCloser, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{URL: target, Err: err}
		}
	}

	c.logger.Debug("making PokeAPI request", slog.String("url", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		return nil, &BadResponseError{URL: target, StatusCode: resp.StatusCode}
	}

	return resp.Body, nil
}
