package joplin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:41184"

var errMissingToken = fmt.Errorf("joplin API token is required")

type Note struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

type Folder struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// APIError is any non-2xx response from the Joplin data API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("joplin API error: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Config struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// Client is a thin wrapper over the Joplin data API. Authentication is a
// token query parameter on every request.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, errMissingToken
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		token:      cfg.Token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Ping checks the clipper service is reachable. The endpoint answers with
// plain text, so the body is ignored.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil, nil)
}

type foldersPage struct {
	Items   []Folder `json:"items"`
	HasMore bool     `json:"has_more"`
}

// FindFolderByTitle walks the folder list and returns the id of the first
// folder whose title matches, case-insensitively.
func (c *Client) FindFolderByTitle(ctx context.Context, title string) (string, error) {
	for page := 1; ; page++ {
		query := url.Values{
			"fields": {"id,title"},
			"page":   {strconv.Itoa(page)},
		}

		var resp foldersPage
		if err := c.do(ctx, http.MethodGet, "/folders", query, nil, &resp); err != nil {
			return "", fmt.Errorf("failed to list folders: %w", err)
		}

		for _, f := range resp.Items {
			if strings.EqualFold(f.Title, title) {
				return f.ID, nil
			}
		}

		if !resp.HasMore {
			return "", fmt.Errorf("folder %q not found", title)
		}
	}
}

type notesPage struct {
	Items   []Note `json:"items"`
	HasMore bool   `json:"has_more"`
}

// ListNotes returns id and title of every note in a folder.
func (c *Client) ListNotes(ctx context.Context, folderID string) ([]Note, error) {
	var notes []Note

	for page := 1; ; page++ {
		query := url.Values{
			"fields": {"id,title"},
			"page":   {strconv.Itoa(page)},
		}

		var resp notesPage
		if err := c.do(ctx, http.MethodGet, "/folders/"+folderID+"/notes", query, nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list notes: %w", err)
		}

		notes = append(notes, resp.Items...)
		if !resp.HasMore {
			return notes, nil
		}
	}
}

// FindNoteByTitle returns the first note in the folder with the exact
// title, or nil when none exists.
func (c *Client) FindNoteByTitle(ctx context.Context, folderID, title string) (*Note, error) {
	notes, err := c.ListNotes(ctx, folderID)
	if err != nil {
		return nil, err
	}

	for i := range notes {
		if notes[i].Title == title {
			return &notes[i], nil
		}
	}
	return nil, nil
}

func (c *Client) CreateNote(ctx context.Context, folderID, title, body string) (*Note, error) {
	payload := Note{
		Title:    title,
		Body:     body,
		ParentID: folderID,
	}

	var created Note
	if err := c.do(ctx, http.MethodPost, "/notes", nil, payload, &created); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateNote(ctx context.Context, noteID, body string) error {
	payload := map[string]string{"body": body}
	var updated json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/notes/"+noteID, nil, payload, &updated); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	return nil
}

func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	if err := c.do(ctx, http.MethodDelete, "/notes/"+noteID, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (c *Client) GetNote(ctx context.Context, noteID string) (*Note, error) {
	query := url.Values{"fields": {"id,title,body"}}

	var note Note
	if err := c.do(ctx, http.MethodGet, "/notes/"+noteID, query, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("token", c.token)

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query.Encode(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
