// Package premint is a client for the premint signature API.
package premint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/mints-deployer/internal/domain"
	"github.com/trebuchet-org/mints-deployer/internal/domain/config"
	"github.com/trebuchet-org/mints-deployer/internal/usecase"
)

const (
	// DefaultBaseURL is the default premint API endpoint.
	DefaultBaseURL = "https://api.zora.co/"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// backendChainNames maps chain ids to the backend's chain names
var backendChainNames = map[uint64]string{
	1:         "ETHEREUM-MAINNET",
	11155111:  "ETHEREUM-SEPOLIA",
	7777777:   "ZORA-MAINNET",
	999999999: "ZORA-SEPOLIA",
	8453:      "BASE-MAINNET",
	84532:     "BASE-SEPOLIA",
	10:        "OPTIMISM-MAINNET",
	42161:     "ARBITRUM-MAINNET",
	81457:     "BLAST-MAINNET",
}

// BackendChainName returns the backend name of a chain
func BackendChainName(chainID uint64) (string, error) {
	name, ok := backendChainNames[chainID]
	if !ok {
		return "", fmt.Errorf("%w: no premint backend for chain %d", domain.ErrUnsupportedChain, chainID)
	}
	return name, nil
}

// Client is a premint API client bound to one chain.
type Client struct {
	chainName  string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL. A trailing slash is added when missing.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(url, "/") {
			url += "/"
		}
		c.baseURL = url
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a client for chainID
func NewClient(chainID uint64, opts ...Option) (*Client, error) {
	chainName, err := BackendChainName(chainID)
	if err != nil {
		return nil, err
	}

	c := &Client{
		chainName: chainName,
		baseURL:   DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError represents a non-2xx API response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("premint API: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return domain.ErrNetwork
}

// IsNotFound returns true if this is a 404 error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Get fetches one premint of a collection
func (c *Client) Get(ctx context.Context, collection common.Address, uid uint64) (*domain.PremintRecord, error) {
	var resp premintResponse
	if err := c.do(ctx, http.MethodGet, c.collectionPath(collection)+"/"+strconv.FormatUint(uid, 10), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain()
}

// GetOfCollection fetches a collection together with all of its premints
func (c *Client) GetOfCollection(ctx context.Context, collection common.Address) (*domain.PremintCollection, error) {
	var resp collectionResponse
	if err := c.do(ctx, http.MethodGet, c.collectionPath(collection), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain()
}

// GetNextUID returns the next free uid of a collection
func (c *Client) GetNextUID(ctx context.Context, collection common.Address) (uint64, error) {
	var resp nextUIDResponse
	if err := c.do(ctx, http.MethodGet, c.collectionPath(collection)+"/next_uid", nil, &resp); err != nil {
		return 0, err
	}
	return resp.NextUID, nil
}

// PostSignature stores a signed premint
func (c *Client) PostSignature(ctx context.Context, signed *domain.SignedPremint) (*domain.PremintSignatureAck, error) {
	body := encodePostSignature(c.chainName, signed)

	var resp signatureAckResponse
	if err := c.do(ctx, http.MethodPost, "premint/signature", body, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(), nil
}

func (c *Client) collectionPath(collection common.Address) string {
	return fmt.Sprintf("premint/signature/%s/%s", c.chainName, strings.ToLower(collection.Hex()))
}

// do performs an HTTP request.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %w", domain.ErrEncoding, err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("premint API request", "method", method, "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(respBody))}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

var _ usecase.PremintAPI = (*Client)(nil)

// Factory creates chain-bound clients with shared settings
type Factory struct {
	baseURL string
	timeout time.Duration
	log     *slog.Logger
}

// NewFactory creates a factory from the runtime config
func NewFactory(cfg *config.RuntimeConfig, log *slog.Logger) *Factory {
	base := cfg.PremintAPIBase
	if base == "" {
		base = DefaultBaseURL
	}
	return &Factory{baseURL: base, timeout: DefaultTimeout, log: log}
}

// ForChain returns a client for chainID
func (f *Factory) ForChain(chainID uint64) (usecase.PremintAPI, error) {
	client, err := NewClient(chainID, WithBaseURL(f.baseURL), WithTimeout(f.timeout), WithLogger(f.log))
	if err != nil {
		return nil, err
	}
	return client, nil
}

var _ usecase.PremintAPIFactory = (*Factory)(nil)
