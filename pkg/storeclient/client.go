// Package storeclient talks to the record store API.
package storeclient

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

	"github.com/google/uuid"

	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/internal/transport"
)

const DefaultTimeout = 5 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(storeURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(storeURL, "/") + "/rest/v1",
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// StatusError is a non-2xx answer from the store.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return resp.StatusCode, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Message: e.Message}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if _, err := c.do(ctx, http.MethodGet, "/products", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string, page, size int) (*transport.SearchProductsResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var resp transport.SearchProductsResponse
	if _, err := c.do(ctx, http.MethodGet, "/products/search?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	path := "/cart_items?" + url.Values{"user_session_id": {sessionID}}.Encode()
	if _, err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) InsertCartItem(ctx context.Context, item *models.CartItem) error {
	req := transport.CreateCartItemRequest{
		UserSessionID: item.UserSessionID,
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		Message:       item.Message,
	}
	_, err := c.do(ctx, http.MethodPost, "/cart_items", req, item)
	return err
}

// MergeCartLine asks the store to add item.Quantity to the matching line or
// create it. item is overwritten with the stored line.
func (c *Client) MergeCartLine(ctx context.Context, item *models.CartItem) error {
	quantity := int(item.Quantity)
	req := transport.MergeCartItemRequest{
		UserSessionID: item.UserSessionID,
		ProductID:     item.ProductID,
		Quantity:      &quantity,
		Message:       item.Message,
	}
	_, err := c.do(ctx, http.MethodPost, "/cart_items/merge", req, item)
	return err
}

func (c *Client) UpdateCartItemQuantity(ctx context.Context, id uuid.UUID, quantity uint) (*models.CartItem, error) {
	q := int(quantity)
	var item models.CartItem
	code, err := c.do(ctx, http.MethodPatch, "/cart_items/"+id.String(), transport.PatchCartItemRequest{Quantity: &q}, &item)
	if err != nil {
		return nil, err
	}
	if code == http.StatusNoContent {
		return nil, nil
	}
	return &item, nil
}

// DeleteCartItem removes the line. The store answering 404 counts as done.
func (c *Client) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	code, err := c.do(ctx, http.MethodDelete, "/cart_items/"+id.String(), nil, nil)
	if code == http.StatusNotFound {
		return nil
	}
	return err
}
