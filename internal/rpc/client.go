// Package rpc is a small Sui JSON-RPC client covering the reads and the
// execute call the tip client needs.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// Options configures a Client.
type Options struct {
	Timeout time.Duration
	Headers map[string]string
}

// Client talks to one fullnode endpoint. Construct it once and pass it to the
// components that read from the chain.
type Client struct {
	endpoint string
	http     *resty.Client
	nextID   atomic.Uint64
	logger   *slog.Logger
}

// NewClient returns a client for endpoint.
func NewClient(endpoint string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	h := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	for k, v := range opts.Headers {
		h.SetHeader(k, v)
	}
	return &Client{
		endpoint: endpoint,
		http:     h,
		logger:   slog.Default().With("component", "rpc_client"),
	}
}

// Endpoint returns the node URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call invokes method with params and decodes the result into out.
func (c *Client) Call(ctx context.Context, method string, out any, params ...any) error {
	if params == nil {
		params = []any{}
	}
	req := request{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.endpoint)
	if err != nil {
		return errors.Wrapf(err, "%s", method)
	}
	c.logger.Debug("rpc call",
		"method", method,
		"id", req.ID,
		"status", resp.StatusCode(),
		"elapsed", time.Since(start),
	)
	if resp.IsError() {
		return errors.Errorf("%s: http %d: %s", method, resp.StatusCode(), truncate(resp.String(), 256))
	}

	var envelope response
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return errors.Wrapf(err, "%s: decode response", method)
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return errors.Wrapf(err, "%s: decode result", method)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
