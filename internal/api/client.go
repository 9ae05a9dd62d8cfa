// Package api is the client side of the remote service contract. Every call is attempted once;
// failures are reported as transport errors, *StatusError for non-success statuses, or
// ErrMalformedResponse when a success body cannot be decoded.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"appdownloader/internal/models"
)

// ErrMalformedResponse indicates a success status with an undecodable body.
var ErrMalformedResponse = errors.New("api: malformed response")

const maxErrorBody = 64 << 10

// StatusError is returned for any non-success HTTP status.
// Message holds the server-provided error text when the body carried one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// File is a screenshot chosen by the user.
type File struct {
	Name    string
	Content io.Reader
}

// Client talks to the remote service rooted at a single base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient parses baseURL and returns a Client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api: base url %q is not absolute", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// Login exchanges credentials for a token and the user record.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "login/", "", models.Credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login returned no token", ErrMalformedResponse)
	}
	return &resp, nil
}

// Signup creates a non-staff account. Only the status is inspected.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	return c.doJSON(ctx, http.MethodPost, "signup/", "", models.SignupRequest{Username: username, Password: password}, nil)
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	var resp models.Profile
	if err := c.doJSON(ctx, http.MethodGet, "get_user_profile/", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListApps fetches the whole catalog.
func (c *Client) ListApps(ctx context.Context, token string) ([]models.App, error) {
	var apps []models.App
	if err := c.doJSON(ctx, http.MethodGet, "get_android_apps/", token, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// AddApp adds a catalog entry. Staff only.
func (c *Client) AddApp(ctx context.Context, token string, req models.AddAppRequest) error {
	return c.doJSON(ctx, http.MethodPost, "add_android_app/", token, req, nil)
}

// ListTasks fetches the user's tasks together with a fresh profile.
func (c *Client) ListTasks(ctx context.Context, token string) (*models.TasksResponse, error) {
	var resp models.TasksResponse
	if err := c.doJSON(ctx, http.MethodGet, "get_user_tasks/", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadApp claims an app for the user.
func (c *Client) DownloadApp(ctx context.Context, token string, appID int) (*models.DownloadResponse, error) {
	var resp models.DownloadResponse
	if err := c.doJSON(ctx, http.MethodPost, "download_app/", token, models.DownloadRequest{AppID: appID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadScreenshot sends file as the multipart field "screenshot" for a task.
func (c *Client) UploadScreenshot(ctx context.Context, token string, taskID int, file File) (*models.UploadResponse, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("screenshot", file.Name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("api: read screenshot: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	var resp models.UploadResponse
	path := fmt.Sprintf("upload_screenshot/%d/", taskID)
	if err := c.do(ctx, http.MethodPost, path, token, &body, form.FormDataContentType(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, out any) error {
	if payload == nil {
		return c.do(ctx, method, path, token, nil, "", out)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, token, bytes.NewReader(data), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	target := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "token "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// A success status with an empty body leaves out at its zero value.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, method, path, err)
	}
	return nil
}

func newStatusError(resp *http.Response) *StatusError {
	statusErr := &StatusError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return statusErr
	}
	var errorResponse models.ErrorResponse
	if json.Unmarshal(raw, &errorResponse) == nil && errorResponse.Error != "" {
		statusErr.Message = errorResponse.Error
		return statusErr
	}
	var message string
	if json.Unmarshal(raw, &message) == nil {
		statusErr.Message = message
	}
	return statusErr
}

// ServerMessage extracts the server-provided error text from err, if any.
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}
