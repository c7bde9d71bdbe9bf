package terminal

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"mtgate/internal/config"
)

// Client talks to the HTTP bridge that fronts a terminal session. Every
// bridge response is an envelope carrying the terminal's error code and
// description next to the payload; the client collapses that side channel
// into a single result-or-error return. One mutex serializes in-flight
// calls, since the terminal API does not tolerate overlapping requests.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	username   string
	password   string
	token      string

	mu sync.Mutex
}

var _ Gateway = (*Client)(nil)

// NewClient constructs a bridge client from configuration.
func NewClient(cfg config.TerminalConfig) (*Client, error) {
	raw := strings.TrimSpace(cfg.BridgeURL)
	if raw == "" {
		return nil, fmt.Errorf("terminal.bridge_url cannot be empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing terminal.bridge_url failed: %w", err)
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true // #nosec G402
		}
	}
	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		username: strings.TrimSpace(cfg.Username),
		password: strings.TrimSpace(cfg.Password),
		token:    strings.TrimSpace(cfg.APIToken),
	}, nil
}

// SetHTTPClient sets the HTTP client for testing.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

func (c *Client) ResolveSymbols(ctx context.Context, pattern string) ([]Symbol, error) {
	path := "/symbols"
	if p := strings.TrimSpace(pattern); p != "" {
		path += "?pattern=" + url.QueryEscape(p)
	}
	var symbols []Symbol
	if err := c.call(ctx, http.MethodGet, path, nil, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

type selectSymbolPayload struct {
	Symbol string `json:"symbol"`
	Enable bool   `json:"enable"`
}

func (c *Client) ActivateSymbol(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("symbol name cannot be empty")
	}
	return c.call(ctx, http.MethodPost, "/symbols/select", selectSymbolPayload{Symbol: name, Enable: true}, nil)
}

func (c *Client) Quote(ctx context.Context, symbol string) (*Tick, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol name cannot be empty")
	}
	var tick *Tick
	if err := c.call(ctx, http.MethodGet, "/tick?symbol="+url.QueryEscape(symbol), nil, &tick); err != nil {
		return nil, err
	}
	return tick, nil
}

func (c *Client) Submit(ctx context.Context, req Request) (*Result, error) {
	var result Result
	if err := c.call(ctx, http.MethodPost, "/order/send", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Positions(ctx context.Context, filter Filter) ([]RawPosition, error) {
	var positions []RawPosition
	if err := c.call(ctx, http.MethodGet, "/positions"+filterQuery(filter), nil, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func (c *Client) PendingOrders(ctx context.Context, filter Filter) ([]RawOrder, error) {
	var orders []RawOrder
	if err := c.call(ctx, http.MethodGet, "/orders"+filterQuery(filter), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Deals(ctx context.Context, query DealsQuery) ([]RawDeal, error) {
	values := url.Values{}
	if !query.From.IsZero() {
		values.Set("from", strconv.FormatInt(query.From.Unix(), 10))
	}
	if !query.To.IsZero() {
		values.Set("to", strconv.FormatInt(query.To.Unix(), 10))
	}
	if query.Ticket != 0 {
		values.Set("ticket", strconv.FormatInt(query.Ticket, 10))
	}
	if s := strings.TrimSpace(query.Symbol); s != "" {
		values.Set("symbol", s)
	}
	if g := strings.TrimSpace(query.Group); g != "" {
		values.Set("group", g)
	}
	path := "/history/deals"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var deals []RawDeal
	if err := c.call(ctx, http.MethodGet, path, nil, &deals); err != nil {
		return nil, err
	}
	return deals, nil
}

// Connected probes the bridge's ping endpoint. Any transport or terminal
// failure reads as not connected.
func (c *Client) Connected() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.call(ctx, http.MethodGet, "/ping", nil, nil) == nil
}

func filterQuery(filter Filter) string {
	values := url.Values{}
	switch {
	case filter.Ticket != 0:
		values.Set("ticket", strconv.FormatInt(filter.Ticket, 10))
	case strings.TrimSpace(filter.Symbol) != "":
		values.Set("symbol", strings.TrimSpace(filter.Symbol))
	case strings.TrimSpace(filter.Group) != "":
		values.Set("group", strings.TrimSpace(filter.Group))
	}
	if encoded := values.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

// call performs one serialized bridge round trip and unpacks the envelope.
// A negative terminal error code becomes a *TerminalError regardless of the
// HTTP status; transport failures wrap ErrNotConnected.
func (c *Client) call(ctx context.Context, method, path string, payload any, out any) error {
	if c == nil || c.httpClient == nil {
		return fmt.Errorf("terminal client not initialized")
	}
	endpoint, err := c.resolveEndpoint(path)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding bridge request failed: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("building bridge request failed: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	c.mu.Lock()
	resp, err := c.httpClient.Do(req)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading bridge response failed: %w", err)
	}

	if terr := envelopeError(data); terr != nil {
		return terr
	}
	if resp.StatusCode >= 300 {
		if len(bytes.TrimSpace(data)) == 0 {
			return fmt.Errorf("bridge returned %s", resp.Status)
		}
		return fmt.Errorf("bridge returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return decodePayload(data, out)
}

// envelopeError probes the response for the terminal's error channel.
// Bridge builds differ in field naming, so several spellings are accepted.
func envelopeError(data []byte) *TerminalError {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return nil
	}
	code := gjson.GetBytes(data, "error_code")
	if !code.Exists() {
		code = gjson.GetBytes(data, "error.code")
	}
	if !code.Exists() || code.Int() >= 0 {
		return nil
	}
	desc := gjson.GetBytes(data, "error_description")
	if !desc.Exists() {
		desc = gjson.GetBytes(data, "error.message")
	}
	description := desc.String()
	if description == "" {
		description = "terminal call failed"
	}
	return &TerminalError{Code: int(code.Int()), Description: description}
}

// decodePayload unmarshals the envelope's data field into out, falling back
// to the whole body for bridges that reply bare.
func decodePayload(data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if inner := gjson.GetBytes(data, "data"); inner.Exists() {
		if inner.Type == gjson.Null {
			return nil
		}
		if err := json.Unmarshal([]byte(inner.Raw), out); err != nil {
			return fmt.Errorf("decoding bridge payload failed: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decoding bridge payload failed: %w", err)
	}
	return nil
}

func (c *Client) resolveEndpoint(path string) (*url.URL, error) {
	if c.baseURL == nil {
		return nil, fmt.Errorf("bridge URL not set")
	}
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = "/"
	}
	query := ""
	if idx := strings.Index(trimmed, "?"); idx >= 0 {
		query = trimmed[idx+1:]
		trimmed = trimmed[:idx]
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	base := *c.baseURL
	base.Path = strings.TrimSuffix(base.Path, "/") + trimmed
	base.RawPath = ""
	base.RawQuery = query
	base.Fragment = ""
	return &base, nil
}
