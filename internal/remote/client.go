package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dresscode/internal/domain/outfit"
)

// Source is the remote half of the catalog. Retry and fallback policy live
// in the sync mediator, not here; callers are expected to inspect the error
// class (NetworkError, HTTPError, DecodeError) and decide.
type Source interface {
	FetchPage(ctx context.Context, query string, filters outfit.Filters, page, pageSize int) (*PagedResponseDTO, error)
	FetchDetail(ctx context.Context, id string) (*OutfitDTO, error)
	ListFavorites(ctx context.Context, token string) ([]OutfitDTO, error)
	AddFavorite(ctx context.Context, id, token string) error
	RemoveFavorite(ctx context.Context, id, token string) error
	Upload(ctx context.Context, data []byte, filename, mimeType, token string) (*OutfitDTO, error)
	Delete(ctx context.Context, id, token string) error
}

type Client struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

var _ Source = (*Client)(nil)

// NewClient builds the HTTP catalog source against baseURL
// (e.g. "http://localhost:8080").
func NewClient(baseURL string, log *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:       log,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: "DressCode-Client/1.0",
	}
}

// BaseURL returns the server root the client was built against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchPage loads one page of the catalog matching a query/filter pair.
func (c *Client) FetchPage(ctx context.Context, query string, filters outfit.Filters, page, pageSize int) (*PagedResponseDTO, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(pageSize))
	if filters.Gender != "" {
		params.Set("gender", strings.ToLower(string(filters.Gender)))
	}
	if filters.Style != "" {
		params.Set("style", filters.Style)
	}
	if filters.Season != "" {
		params.Set("season", filters.Season)
	}
	if filters.Scene != "" {
		params.Set("scene", filters.Scene)
	}
	if filters.Weather != "" {
		params.Set("weather", filters.Weather)
	}
	if len(filters.Tags) > 0 {
		params.Set("tags", strings.Join(filters.Tags, ","))
	}
	if strings.TrimSpace(query) != "" {
		params.Set("q", query)
	}

	var page0 PagedResponseDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/outfits?"+params.Encode(), "", nil, &page0); err != nil {
		return nil, err
	}
	return &page0, nil
}

// FetchDetail loads one outfit with all of its images.
func (c *Client) FetchDetail(ctx context.Context, id string) (*OutfitDTO, error) {
	var dto OutfitDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/outfits/"+url.PathEscape(id), "", nil, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ListFavorites returns the server-side favorite set for the session.
func (c *Client) ListFavorites(ctx context.Context, token string) ([]OutfitDTO, error) {
	var dtos []OutfitDTO
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/favorites", token, nil, &dtos); err != nil {
		return nil, err
	}
	return dtos, nil
}

func (c *Client) AddFavorite(ctx context.Context, id, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/favorites/"+url.PathEscape(id), token, nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, id, token string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/favorites/"+url.PathEscape(id), token, nil, nil)
}

// Upload submits a new user outfit image as multipart form data.
func (c *Client) Upload(ctx context.Context, data []byte, filename, mimeType, token string) (*OutfitDTO, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if mimeType != "" {
		if err := writer.WriteField("content_type", mimeType); err != nil {
			return nil, fmt.Errorf("build multipart body: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/outfits", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setCommonHeaders(req, token)

	var dto OutfitDTO
	if err := c.send(req, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

func (c *Client) Delete(ctx context.Context, id, token string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/outfits/"+url.PathEscape(id), token, nil, nil)
}

// Login opens a session on the server and returns the bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token  string `json:"token"`
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", "", body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		msg := resp.Error
		if msg == "" {
			msg = "login rejected"
		}
		return "", fmt.Errorf("%s: %w", msg, outfit.ErrUnauthenticated)
	}
	return resp.Token, nil
}

// Logout revokes the bearer token on the server.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/v1/auth/logout", token, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req, token)

	return c.send(req, result)
}

func (c *Client) setCommonHeaders(req *http.Request, token string) {
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// send executes the request and classifies failures: transport errors become
// NetworkError, 4xx/5xx become HTTPError, undecodable bodies DecodeError.
func (c *Client) send(req *http.Request, result any) error {
	c.log.Debug("sending request", "method", req.Method, "url", req.URL.String())

	resp, err := c.client.Do(req)
	if err != nil {
		return &outfit.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &outfit.NetworkError{Err: err}
	}

	c.log.Debug("received response", "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode >= 400 {
		httpErr := &outfit.HTTPError{Status: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &errResp); err == nil {
			httpErr.Message = errResp.Error
		}
		return httpErr
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return &outfit.DecodeError{Err: err}
		}
	}
	return nil
}
