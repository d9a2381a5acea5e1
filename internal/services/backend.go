package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/teapos/internal/pos"
)

// BackendClient talks to the ordering backend that owns the catalog,
// the transaction ledger and all manager data. The terminal never
// bypasses it: tax authority, inventory decrement and persistence all
// live on the other side of this client.
type BackendClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewBackendClient builds a client for the given base URL. An empty
// token disables the Authorization header for deployments where the
// backend sits on a trusted network.
func NewBackendClient(baseURL, token string, timeout time.Duration) *BackendClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// RequestOpts captures inputs for a backend API call.
type RequestOpts struct {
	Method  string
	Path    string
	Query   map[string]string
	Body    any
	Headers map[string]string
}

// Response bundles the HTTP response metadata for proxy-style callers.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// Do performs a backend request and returns the raw response. Transport
// failures return an error; HTTP error statuses are reported through
// Response.Status so proxy handlers can relay them verbatim.
func (c *BackendClient) Do(opts RequestOpts) (*Response, error) {
	if opts.Method == "" {
		return nil, errors.New("request method is required")
	}
	path := strings.TrimLeft(opts.Path, "/")
	if path == "" {
		return nil, errors.New("request path is required")
	}

	u, err := url.Parse(c.baseURL + "/" + path)
	if err != nil {
		return nil, fmt.Errorf("parse backend URL: %w", err)
	}
	if len(opts.Query) > 0 {
		values := u.Query()
		for k, v := range opts.Query {
			values.Set(k, v)
		}
		u.RawQuery = values.Encode()
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(opts.Method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if opts.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		Status: resp.StatusCode,
		Body:   respBody,
		Header: resp.Header.Clone(),
	}, nil
}

// getJSON performs a GET and decodes a 2xx response into out.
func (c *BackendClient) getJSON(path string, out any) error {
	resp, err := c.Do(RequestOpts{Method: http.MethodGet, Path: path})
	if err != nil {
		return err
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return fmt.Errorf("backend GET %s: status %d, body: %s", path, resp.Status, string(resp.Body))
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", path, err)
	}
	return nil
}

type menuItemPayload struct {
	MenuItemID   int     `json:"menuItemId"`
	MenuItemName string  `json:"menuItemName"`
	Price        float64 `json:"price"`
	Ingredients  string  `json:"ingredients"`
}

type menuResponse struct {
	MenuItems []menuItemPayload `json:"menuItems"`
}

// FetchMenu retrieves all menu items.
func (c *BackendClient) FetchMenu() ([]pos.MenuItem, error) {
	var payload menuResponse
	if err := c.getJSON("api/menu", &payload); err != nil {
		return nil, err
	}

	items := make([]pos.MenuItem, 0, len(payload.MenuItems))
	for _, item := range payload.MenuItems {
		items = append(items, pos.MenuItem{
			ID:          item.MenuItemID,
			Name:        item.MenuItemName,
			Price:       item.Price,
			Ingredients: item.Ingredients,
		})
	}
	return items, nil
}

type addOnPayload struct {
	// The backend serves numeric add-on IDs; json.Number keeps the
	// client tolerant of string IDs from newer revisions.
	AddOnID   json.Number `json:"addOnID"`
	AddOnName string      `json:"addOnName"`
	Price     float64     `json:"price"`
}

type addOnResponse struct {
	AddOns []addOnPayload `json:"addOns"`
}

// FetchAddOns retrieves all drink add-ons.
func (c *BackendClient) FetchAddOns() ([]pos.AddOn, error) {
	var payload addOnResponse
	if err := c.getJSON("api/addons", &payload); err != nil {
		return nil, err
	}

	addOns := make([]pos.AddOn, 0, len(payload.AddOns))
	for _, addOn := range payload.AddOns {
		addOns = append(addOns, pos.AddOn{
			ID:    addOn.AddOnID.String(),
			Name:  addOn.AddOnName,
			Price: addOn.Price,
		})
	}
	return addOns, nil
}

// TransactionAck is the backend's acknowledgment of a recorded sale.
type TransactionAck struct {
	TransactionID int     `json:"transactionId"`
	Message       string  `json:"message"`
	Total         float64 `json:"total"`
}

// SubmissionError reports a transaction the backend refused. The cart
// must be left untouched when this is returned.
type SubmissionError struct {
	Status int
	Body   string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction submission rejected: status %d, body: %s", e.Status, e.Body)
}

// CreateTransaction submits a finalized sale. Any error, transport or
// HTTP, means the sale was not confirmed and the caller must keep the
// cart intact for retry.
func (c *BackendClient) CreateTransaction(sub pos.Submission) (*TransactionAck, error) {
	resp, err := c.Do(RequestOpts{
		Method: http.MethodPost,
		Path:   "api/transactions",
		Body:   sub,
	})
	if err != nil {
		return nil, fmt.Errorf("submit transaction: %w", err)
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return nil, &SubmissionError{Status: resp.Status, Body: string(resp.Body)}
	}

	var ack TransactionAck
	if err := json.Unmarshal(resp.Body, &ack); err != nil {
		return nil, fmt.Errorf("unmarshal transaction response: %w", err)
	}
	return &ack, nil
}

// EmployeeLogin is the backend's answer to a login attempt.
type EmployeeLogin struct {
	EmployeeID int    `json:"employeeId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	AuthLevel  string `json:"authLevel"`
}

// Login verifies employee credentials against the backend.
func (c *BackendClient) Login(employeeID int, password string) (*EmployeeLogin, error) {
	body := map[string]any{"employeeId": employeeID}
	if password != "" {
		body["password"] = password
	}

	resp, err := c.Do(RequestOpts{
		Method: http.MethodPost,
		Path:   "api/auth/login",
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("backend login: %w", err)
	}
	if resp.Status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return nil, fmt.Errorf("backend login: status %d, body: %s", resp.Status, string(resp.Body))
	}

	var login EmployeeLogin
	if err := json.Unmarshal(resp.Body, &login); err != nil {
		return nil, fmt.Errorf("unmarshal login response: %w", err)
	}
	return &login, nil
}

// ErrInvalidCredentials is returned when the backend rejects a login.
var ErrInvalidCredentials = errors.New("invalid credentials")
