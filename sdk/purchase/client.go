package purchase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Sentinel errors surfaced by the client and the submitter. Callers should
// test with errors.Is; all of them may arrive wrapped with call context.
var (
	// ErrTransport means the request never reached the server. Retryable.
	ErrTransport = errors.New("transport failure")
	// ErrUnconfirmed means the write was sent but its outcome could not be
	// read back. It is not a failure; the caller should verify or retry.
	ErrUnconfirmed = errors.New("write unconfirmed")
	// ErrAlreadyActive means a pending or accepted request already covers
	// the target.
	ErrAlreadyActive = errors.New("request already active")
	// ErrConflict is the server-side duplicate-pending rejection.
	ErrConflict = errors.New("conflict")
)

// Client is the purchase API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new purchase API client.
//
// Parameters:
//   - baseURL: the API base URL including the version prefix
//     (e.g. "https://api.example.com/api/v1")
//   - token: the bearer token of the acting user
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func requestsPath(kind TargetKind) string {
	if kind == TargetKindSubUnit {
		return "/subunit-requests"
	}
	return "/requests"
}

func targetIDField(kind TargetKind) string {
	if kind == TargetKindSubUnit {
		return "sub_unit_id"
	}
	return "pack_id"
}

// CreateRequest submits a new purchase request for the target.
//
// A nil error with a non-nil Request means the write was confirmed. An
// ErrUnconfirmed error means the write was sent but the response could not
// be read; the caller must reconcile via ListRequests before treating the
// submission as failed.
func (c *Client) CreateRequest(ctx context.Context, target Target) (*Request, error) {
	body := map[string]any{targetIDField(target.Kind): target.ID}

	var data struct {
		Request Request `json:"request"`
	}
	if err := c.doRequest(ctx, http.MethodPost, c.baseURL+requestsPath(target.Kind), body, &data); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return &data.Request, nil
}

// ListRequests retrieves the acting user's requests at the given granularity,
// newest first.
func (c *Client) ListRequests(ctx context.Context, kind TargetKind) ([]Request, error) {
	var data struct {
		Requests []Request `json:"requests"`
	}
	if err := c.doRequest(ctx, http.MethodGet, c.baseURL+requestsPath(kind), nil, &data); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return data.Requests, nil
}

// CheckAccess resolves the entitlement decision for a user and target.
func (c *Client) CheckAccess(ctx context.Context, userID uint, target Target) (*AccessDecision, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatUint(uint64(userID), 10))
	q.Set("target_kind", string(target.Kind))
	q.Set("target_id", strconv.FormatUint(uint64(target.ID), 10))

	var decision AccessDecision
	if err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/check_access?"+q.Encode(), nil, &decision); err != nil {
		return nil, fmt.Errorf("check access: %w", err)
	}
	return &decision, nil
}

// AttachReceipt records a proof-of-payment reference on a pending request.
// A second call replaces the previous receipt.
func (c *Client) AttachReceipt(ctx context.Context, requestSID, receiptRef string) (*Receipt, error) {
	body := map[string]any{"receipt_ref": receiptRef}

	var data struct {
		Receipt Receipt `json:"receipt"`
	}
	err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/requests/"+requestSID+"/receipt", body, &data)
	if err != nil {
		return nil, fmt.Errorf("attach receipt: %w", err)
	}
	return &data.Receipt, nil
}

// doRequest performs an HTTP request and decodes the enveloped response.
//
// Error classification follows the three-outcome transport model: a send
// failure maps to ErrTransport, while a write that reached the server but
// produced an unreadable or undecodable response maps to ErrUnconfirmed.
func (c *Client) doRequest(ctx context.Context, method, rawURL string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if method == http.MethodGet {
			return fmt.Errorf("%w: read response: %v", ErrTransport, err)
		}
		return fmt.Errorf("%w: read response: %v", ErrUnconfirmed, err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if method == http.MethodGet {
			return fmt.Errorf("%w: undecodable response: %v", ErrTransport, err)
		}
		return fmt.Errorf("%w: undecodable response: %v", ErrUnconfirmed, err)
	}

	if resp.StatusCode == http.StatusConflict {
		if apiResp.Error != nil {
			return fmt.Errorf("%w: %s", ErrConflict, apiResp.Error.Message)
		}
		return fmt.Errorf("%w: %s", ErrConflict, apiResp.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if apiResp.Error != nil {
			return fmt.Errorf("api error: status=%d type=%s message=%s", resp.StatusCode, apiResp.Error.Type, apiResp.Error.Message)
		}
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if !apiResp.Success {
		return fmt.Errorf("api error: %s", apiResp.Message)
	}

	if result == nil || apiResp.Data == nil {
		return nil
	}

	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
