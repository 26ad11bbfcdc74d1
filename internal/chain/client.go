package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stxswap/internal/clarity"
	"stxswap/internal/observability"
)

// DefaultTimeout bounds a single node request. The SDK imposes no retry
// policy: a transport failure is fatal to the enclosing operation.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for a Stacks node API.
type Client struct {
	network Network
	baseURL string
	client  *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithBaseURL overrides the per-network default node API host.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a node API client for the given network.
func NewClient(network Network, opts ...ClientOption) *Client {
	c := &Client{
		network: network,
		baseURL: network.CoreAPIURL(),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Network returns the network the client targets.
func (c *Client) Network() Network { return c.network }

// ReadResult is a decoded read-only call result. Success mirrors the
// contract's (ok ...) / (err ...) response; Value is the inner value.
type ReadResult struct {
	Success bool
	Value   clarity.Value
}

// callReadRequest is the node API request body for call-read.
type callReadRequest struct {
	Sender    string   `json:"sender"`
	Arguments []string `json:"arguments"`
}

// callReadResponse is the node API response for call-read. Okay=false is an
// application-level failure distinct from a transport failure.
type callReadResponse struct {
	Okay   bool   `json:"okay"`
	Result string `json:"result"`
	Cause  string `json:"cause"`
}

// CallReadOnly invokes a read-only contract function and decodes its result.
func (c *Client) CallReadOnly(ctx context.Context, contractAddress, contractName, functionName string, args []clarity.Value, senderAddress string) (*ReadResult, error) {
	start := time.Now()
	defer func() {
		observability.RecordReadCall(functionName, time.Since(start).Seconds())
	}()

	hexArgs := make([]string, len(args))
	for i, arg := range args {
		encoded, err := clarity.EncodeHex(arg)
		if err != nil {
			return nil, fmt.Errorf("encode argument %d: %w", i, err)
		}
		hexArgs[i] = encoded
	}

	body, err := json.Marshal(callReadRequest{Sender: senderAddress, Arguments: hexArgs})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v2/contracts/call-read/%s/%s/%s", c.baseURL, contractAddress, contractName, functionName)
	respBody, err := c.post(ctx, url, "application/json", body)
	if err != nil {
		return nil, err
	}

	var result callReadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal call-read response: %w", err)
	}
	if !result.Okay {
		return nil, fmt.Errorf("read-only call %s failed: %s", functionName, result.Cause)
	}

	value, err := clarity.DecodeHex(result.Result)
	if err != nil {
		return nil, fmt.Errorf("decode call-read result: %w", err)
	}

	switch v := value.(type) {
	case clarity.OK:
		return &ReadResult{Success: true, Value: v.Value}, nil
	case clarity.Err:
		return &ReadResult{Success: false, Value: v.Value}, nil
	default:
		return &ReadResult{Success: true, Value: value}, nil
	}
}

// addressNonces is the node API response for the nonce endpoint.
type addressNonces struct {
	LastExecutedTxNonce *uint64 `json:"last_executed_tx_nonce"`
	PossibleNextNonce   uint64  `json:"possible_next_nonce"`
}

// NextNonce fetches the next usable nonce for an account. Fetched fresh per
// mutation call; never cached.
func (c *Client) NextNonce(ctx context.Context, address string) (uint64, error) {
	url := fmt.Sprintf("%s/extended/v1/address/%s/nonces", c.baseURL, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to get nonce: status %d", resp.StatusCode)
	}

	var nonces addressNonces
	if err := json.NewDecoder(resp.Body).Decode(&nonces); err != nil {
		return 0, fmt.Errorf("unmarshal nonces: %w", err)
	}
	return nonces.PossibleNextNonce, nil
}

// BroadcastResult is a successful broadcast.
type BroadcastResult struct {
	TxID string
}

// RejectedError is a structured broadcast rejection from the node, distinct
// from a transport error but equally fatal to the calling operation.
type RejectedError struct {
	Message    string
	Reason     string
	ReasonData json.RawMessage
	TxID       string
}

func (e *RejectedError) Error() string {
	switch {
	case e.Reason != "" && len(e.ReasonData) > 0:
		return fmt.Sprintf("transaction rejected: %s (%s: %s)", e.Message, e.Reason, e.ReasonData)
	case e.Reason != "":
		return fmt.Sprintf("transaction rejected: %s (%s)", e.Message, e.Reason)
	default:
		return fmt.Sprintf("transaction rejected: %s", e.Message)
	}
}

// broadcastRejection is the node API error body for a rejected transaction.
type broadcastRejection struct {
	Error      string          `json:"error"`
	Reason     string          `json:"reason"`
	ReasonData json.RawMessage `json:"reason_data"`
	TxID       string          `json:"txid"`
}

// Broadcast submits a signed transaction to the node.
func (c *Client) Broadcast(ctx context.Context, rawTx []byte) (*BroadcastResult, error) {
	start := time.Now()

	url := c.baseURL + "/v2/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(rawTx))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		observability.RecordBroadcast("transport_error", time.Since(start).Seconds())
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.RecordBroadcast("transport_error", time.Since(start).Seconds())
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var rejection broadcastRejection
		if err := json.Unmarshal(respBody, &rejection); err == nil && rejection.Error != "" {
			observability.RecordBroadcast("rejected", time.Since(start).Seconds())
			return nil, &RejectedError{
				Message:    rejection.Error,
				Reason:     rejection.Reason,
				ReasonData: rejection.ReasonData,
				TxID:       rejection.TxID,
			}
		}
		observability.RecordBroadcast("transport_error", time.Since(start).Seconds())
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	// The node returns the txid as a bare JSON string.
	var txid string
	if err := json.Unmarshal(respBody, &txid); err != nil {
		observability.RecordBroadcast("decode_error", time.Since(start).Seconds())
		return nil, fmt.Errorf("unmarshal txid: %w", err)
	}

	observability.RecordBroadcast("accepted", time.Since(start).Seconds())
	return &BroadcastResult{TxID: txid}, nil
}

// post issues a POST and returns the body of a 200 response.
func (c *Client) post(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
