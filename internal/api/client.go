// Package api is the REST client for an InvenTree-compatible
// inventory server. It issues the paginated/filtered list requests the
// table views are built on, plus the single-record mutations whose
// results feed optimistic table updates.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/invtop/invtop/internal/prefs"
	"github.com/invtop/invtop/internal/roles"
	"github.com/invtop/invtop/internal/tablestate"
)

// Well-known endpoints.
const (
	EndpointParts      = "/api/part/"
	EndpointStock      = "/api/stock/"
	EndpointPO         = "/api/order/po/"
	EndpointPOLines    = "/api/order/po-line/"
	EndpointRoles      = "/api/user/roles/"
	EndpointServerInfo = "/api/"
)

const defaultHTTPTimeout = 30 * time.Second

// Client talks to one inventory server.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given server. The token is sent as a
// Token authorization header on every request.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// BaseURL returns the server URL the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// Query carries the list-request parameters a table view controls.
type Query struct {
	Page     int
	PageSize int
	Search   string
	Filters  []prefs.Filter
	// Params holds caller-supplied extra parameters (e.g. a parent
	// order ID for a line-item table).
	Params url.Values
}

// Encode renders the query as URL parameters. Zero-valued fields are
// omitted; filter values and extra params are passed through verbatim.
func (q Query) Encode() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for _, f := range q.Filters {
		v.Set(f.Name, f.Value)
	}
	for name, vals := range q.Params {
		for _, val := range vals {
			v.Add(name, val)
		}
	}
	return v
}

// ListResult is the response envelope of a paginated list endpoint.
type ListResult struct {
	Results []tablestate.Record `json:"results"`
	Count   int                 `json:"count"`
}

// List fetches one page from a list endpoint. The server is expected
// to answer with a {results, count} envelope; a bare JSON array is
// accepted too, in which case count is the array length.
func (c *Client) List(ctx context.Context, endpoint string, q Query) (ListResult, error) {
	body, err := c.do(ctx, http.MethodGet, endpoint, q.Encode(), nil)
	if err != nil {
		return ListResult{}, err
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []tablestate.Record
		if err := json.Unmarshal(body, &records); err != nil {
			return ListResult{}, fmt.Errorf("decoding list response: %w", err)
		}
		return ListResult{Results: records, Count: len(records)}, nil
	}

	var res ListResult
	if err := json.Unmarshal(body, &res); err != nil {
		return ListResult{}, fmt.Errorf("decoding list response: %w", err)
	}
	return res, nil
}

// Retrieve fetches a single record from a detail endpoint.
func (c *Client) Retrieve(ctx context.Context, endpoint string, pk int64) (tablestate.Record, error) {
	body, err := c.do(ctx, http.MethodGet, detailURL(endpoint, pk), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// Create posts a new record to a list endpoint and returns the record
// the server created.
func (c *Client) Create(ctx context.Context, endpoint string, fields map[string]any) (tablestate.Record, error) {
	body, err := c.do(ctx, http.MethodPost, endpoint, nil, fields)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// Update patches a single record and returns the updated record as the
// server sees it, ready to upsert into a table's cache.
func (c *Client) Update(ctx context.Context, endpoint string, pk int64, fields map[string]any) (tablestate.Record, error) {
	body, err := c.do(ctx, http.MethodPatch, detailURL(endpoint, pk), nil, fields)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body)
}

// Delete removes a single record.
func (c *Client) Delete(ctx context.Context, endpoint string, pk int64) error {
	_, err := c.do(ctx, http.MethodDelete, detailURL(endpoint, pk), nil, nil)
	return err
}

// Post sends a plain POST to an action endpoint (e.g. receiving line
// items against a purchase order).
func (c *Client) Post(ctx context.Context, endpoint string, fields map[string]any) error {
	_, err := c.do(ctx, http.MethodPost, endpoint, nil, fields)
	return err
}

// Roles fetches the authenticated user's role assignment.
func (c *Client) Roles(ctx context.Context) (roles.Set, error) {
	body, err := c.do(ctx, http.MethodGet, EndpointRoles, nil, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Roles map[string][]string `json:"roles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding roles response: %w", err)
	}
	return roles.Set(payload.Roles), nil
}

// Ping checks that the server answers on its API root.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, EndpointServerInfo, nil, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, payload map[string]any) ([]byte, error) {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, u, body)
	}
	return body, nil
}

func detailURL(endpoint string, pk int64) string {
	return strings.TrimRight(endpoint, "/") + "/" + strconv.FormatInt(pk, 10) + "/"
}

func decodeRecord(body []byte) (tablestate.Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var rec tablestate.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return rec, nil
}
