// Package equipclient is a typed client for the equipstore HTTP API.
package equipclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Supply status codes, as returned in SupplyResult.Status.
const (
	StatusOK              = 0
	StatusNotFound        = -1
	StatusNotEnoughStored = -2
)

// Equipment is one registry record.
type Equipment struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Supplier      string `json:"supplier"`
	Amount        int    `json:"amount"`
	LowerBound    int    `json:"lower_bound"`
	OrderQuantity int    `json:"order_quantity"`
}

// RegisterInput is the body of a registration.
type RegisterInput struct {
	Name       string `json:"name"`
	Supplier   string `json:"supplier"`
	Amount     int    `json:"amount"`
	LowerBound int    `json:"lower_bound"`
}

// UpdateInput changes the non-nil fields only.
type UpdateInput struct {
	Supplier   *string `json:"supplier,omitempty"`
	LowerBound *int    `json:"lower_bound,omitempty"`
}

// SupplyResult is the outcome of a supply alteration.
type SupplyResult struct {
	Status int    `json:"status"`
	Result string `json:"result"`
}

// OK reports whether the alteration was applied.
func (r SupplyResult) OK() bool { return r.Status == StatusOK }

// OrderLine is one row of the order report.
type OrderLine struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	OrderQuantity int    `json:"order_quantity"`
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("equipstore: %d: %s", e.StatusCode, e.Message)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return fmt.Sprintf("equipstore: %d: %s (%s)", e.StatusCode, e.Message, strings.Join(parts, ", "))
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsConflict reports whether err is a 409 from the API, e.g. a duplicate name.
func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Client talks to one equipstore server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8080".
// The /api prefix is added by the client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register registers new equipment. A duplicate name yields an error for
// which IsConflict is true.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Equipment, error) {
	var out struct {
		Registered bool       `json:"registered"`
		Equipment  *Equipment `json:"equipment"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/equipment", in, &out); err != nil {
		return nil, err
	}
	if !out.Registered || out.Equipment == nil {
		return nil, errors.New("equipstore: registration not confirmed")
	}
	return out.Equipment, nil
}

// Get returns the equipment with the given id.
func (c *Client) Get(ctx context.Context, id int) (*Equipment, error) {
	var out Equipment
	if err := c.doJSON(ctx, http.MethodGet, idPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByName returns the equipment with the given name, ignoring case.
func (c *Client) GetByName(ctx context.Context, name string) (*Equipment, error) {
	var out Equipment
	if err := c.doJSON(ctx, http.MethodGet, namePath(name), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes supplier and/or lower bound.
func (c *Client) Update(ctx context.Context, id int, in UpdateInput) (*Equipment, error) {
	var out Equipment
	if err := c.doJSON(ctx, http.MethodPatch, idPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AlterSupply adds difference to the stored amount. NOT_FOUND and
// NOT_ENOUGH_STORED are reported in the result, not as an error.
func (c *Client) AlterSupply(ctx context.Context, id, difference int) (SupplyResult, error) {
	return c.alter(ctx, idPath(id)+"/supply", difference)
}

// AlterSupplyByName is AlterSupply with a name lookup.
func (c *Client) AlterSupplyByName(ctx context.Context, name string, difference int) (SupplyResult, error) {
	return c.alter(ctx, namePath(name)+"/supply", difference)
}

func (c *Client) alter(ctx context.Context, path string, difference int) (SupplyResult, error) {
	body := map[string]int{"difference": difference}
	resp, err := c.send(ctx, http.MethodPost, path, body, "application/json")
	if err != nil {
		return SupplyResult{}, err
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNotFound, http.StatusConflict:
		var out SupplyResult
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return SupplyResult{}, fmt.Errorf("equipstore: decode supply result: %w", err)
		}
		return out, nil
	default:
		return SupplyResult{}, readAPIError(resp)
	}
}

// Orders returns the text order report.
func (c *Client) Orders(ctx context.Context) (string, error) {
	return c.text(ctx, "/equipment/orders")
}

// OrderLines returns the order report as rows.
func (c *Client) OrderLines(ctx context.Context) ([]OrderLine, error) {
	var out struct {
		Orders []OrderLine `json:"orders"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/equipment/orders?format=json", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// Data returns the text data report.
func (c *Client) Data(ctx context.Context) (string, error) {
	return c.text(ctx, "/equipment/data")
}

// DataWorkbook streams the data report as an .xlsx workbook into w.
func (c *Client) DataWorkbook(ctx context.Context, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, "/equipment/data?format=xlsx", nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("equipstore: read workbook: %w", err)
	}
	return nil
}

func (c *Client) text(ctx context.Context, path string) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, "text/plain")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return "", readAPIError(resp)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("equipstore: read report: %w", err)
	}
	return string(b), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("equipstore: decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in any, accept string) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("equipstore: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("equipstore: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("equipstore: %s %s: %w", method, path, err)
	}
	return resp, nil
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(b, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Fields = body.Fields
	} else {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func idPath(id int) string { return "/equipment/" + strconv.Itoa(id) }

func namePath(name string) string { return "/equipment/name/" + url.PathEscape(name) }
