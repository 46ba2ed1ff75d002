// Package client talks to the issue reporting API the way the browser
// front end does, with credentials held in an explicit Session.
package client

import (
	"bytes"          // Request bodies
	"context"        // Request cancellation
	"encoding/json"  // JSON encoding/decoding
	"errors"         // Error inspection
	"fmt"            // Error formatting
	"io"             // Stream copying
	"mime/multipart" // Image uploads
	"net/http"       // HTTP client
	"net/url"        // Query strings
	"strconv"        // Path ids
	"time"           // Request timeout
)

// Issue is an issue view as returned by the listing endpoints
type Issue struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Status          string     `json:"status"`
	Location        string     `json:"location"`
	ImagePath       *string    `json:"image_path"`
	ReporterID      *uint      `json:"reporter_id"`
	ReporterName    *string    `json:"reporter_name"`
	AssignedOfficer *string    `json:"assigned_officer"`
	VoteCount       int64      `json:"vote_count"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// Comment is one entry of an issue's comment log
type Comment struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	IssueID   uint      `json:"issue_id"`
	Comment   string    `json:"comment"`
	Username  *string   `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Filters are the server side query options
type Filters struct {
	Category string
	Status   string
	SortBy   string
	Order    string
}

func (f Filters) values() url.Values {
	v := url.Values{}
	for k, val := range map[string]string{"category": f.Category, "status": f.Status, "sortBy": f.SortBy, "order": f.Order} {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// NewIssue is a report to submit
type NewIssue struct {
	Title       string
	Description string
	Category    string
	Location    string
	ImageName   string    // File name sent with the image, empty for no image
	Image       io.Reader // Image content
}

// RegisterRequest is the sign up payload
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
}

// Analytics is the admin dashboard summary
type Analytics struct {
	CategoryStats []struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	} `json:"categoryStats"`
	StatusStats []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	} `json:"statusStats"`
	TotalStats struct {
		TotalIssues      int64 `json:"total_issues"`
		ResolvedIssues   int64 `json:"resolved_issues"`
		InProgressIssues int64 `json:"in_progress_issues"`
		PendingIssues    int64 `json:"pending_issues"`
	} `json:"totalStats"`
}

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// ErrNotLoggedIn is returned by calls that need a session
var ErrNotLoggedIn = errors.New("client: not logged in")

// Client is a thin API client. Requests are never retried; callers re-query
// after a failed mutation if they want to.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Session *Session
}

// New returns a client with a fresh, logged out session
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Session: &Session{},
	}
}

type authResponse struct {
	Token string    `json:"token"`
	User  *Identity `json:"user"`
	Admin *Identity `json:"admin"`
}

// Register creates an account and logs it in
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Identity, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", req, &out, false); err != nil {
		return nil, err
	}
	c.Session.set(out.Token, out.User, false)
	return out.User, nil
}

// Login starts a citizen session
func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (*Identity, error) {
	var out authResponse
	body := map[string]string{"username": usernameOrEmail, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", body, &out, false); err != nil {
		return nil, err
	}
	c.Session.set(out.Token, out.User, false)
	return out.User, nil
}

// AdminLogin starts an admin session
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*Identity, error) {
	var out authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", body, &out, false); err != nil {
		return nil, err
	}
	c.Session.set(out.Token, out.Admin, true)
	return out.Admin, nil
}

// Logout clears the session
func (c *Client) Logout() {
	c.Session.Clear()
}

// Issues fetches the public listing
func (c *Client) Issues(ctx context.Context, f Filters) ([]Issue, error) {
	var out []Issue
	err := c.doJSON(ctx, http.MethodGet, "/api/issues?"+f.values().Encode(), nil, &out, false)
	return out, err
}

// Issue fetches one issue
func (c *Client) Issue(ctx context.Context, id uint) (*Issue, error) {
	var out Issue
	if err := c.doJSON(ctx, http.MethodGet, issuePath(id, ""), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateIssue submits a report as multipart form data
func (c *Client) CreateIssue(ctx context.Context, in NewIssue) (*Issue, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"title": in.Title, "description": in.Description, "category": in.Category, "location": in.Location} {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if in.Image != nil && in.ImageName != "" {
		part, err := mw.CreateFormFile("image", in.ImageName)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, in.Image); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	var out struct {
		Issue Issue `json:"issue"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/issues", &buf, mw.FormDataContentType(), &out, true); err != nil {
		return nil, err
	}
	return &out.Issue, nil
}

// Vote votes on an issue
func (c *Client) Vote(ctx context.Context, issueID uint) error {
	return c.doJSON(ctx, http.MethodPost, issuePath(issueID, "/vote"), nil, nil, true)
}

// AddComment comments on an issue
func (c *Client) AddComment(ctx context.Context, issueID uint, text string) error {
	return c.doJSON(ctx, http.MethodPost, issuePath(issueID, "/comments"), map[string]string{"comment": text}, nil, true)
}

// Comments lists an issue's comments, oldest first
func (c *Client) Comments(ctx context.Context, issueID uint) ([]Comment, error) {
	var out []Comment
	err := c.doJSON(ctx, http.MethodGet, issuePath(issueID, "/comments"), nil, &out, false)
	return out, err
}

// AdminIssues fetches the admin listing
func (c *Client) AdminIssues(ctx context.Context, f Filters) ([]Issue, error) {
	var out []Issue
	err := c.doJSON(ctx, http.MethodGet, "/api/admin/issues?"+f.values().Encode(), nil, &out, true)
	return out, err
}

// UpdateStatus triages an issue; officer may be empty
func (c *Client) UpdateStatus(ctx context.Context, issueID uint, status, officer string) error {
	body := map[string]any{"status": status}
	if officer != "" {
		body["assignedOfficer"] = officer
	}
	path := "/api/admin/issues/" + strconv.FormatUint(uint64(issueID), 10) + "/status"
	return c.doJSON(ctx, http.MethodPut, path, body, nil, true)
}

// Analytics fetches the admin dashboard counts
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var out Analytics
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/analytics", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func issuePath(id uint, suffix string) string {
	return "/api/issues/" + strconv.FormatUint(uint64(id), 10) + suffix
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out, auth)
}

// do sends one request. A 401 on an authenticated call ends the session.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, auth bool) error {
	token := c.Session.Token()
	if auth && token == "" {
		return ErrNotLoggedIn
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		c.Session.Clear()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
