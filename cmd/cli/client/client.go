package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/course-api/cmd/cli/config"
	"github.com/spf13/cobra"
)

// Client calls the course API with optional Basic credentials.
type Client struct {
	BaseURL  string
	Email    string
	Password string
	HTTP     *http.Client
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status   int
	Message  string
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("status %d: %s", e.Status, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// FromCommand builds a client from the --api-url/--email/--password flags,
// falling back to the environment.
func FromCommand(cmd *cobra.Command) *Client {
	c := &Client{
		BaseURL:  config.APIURL(),
		Email:    config.Email(),
		Password: config.Password(),
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
	if v := flagValue(cmd, "api-url"); v != "" {
		c.BaseURL = v
	}
	if v := flagValue(cmd, "email"); v != "" {
		c.Email = v
	}
	if v := flagValue(cmd, "password"); v != "" {
		c.Password = v
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

func flagValue(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// Do sends payload (if any) as JSON and decodes a 2xx body into out (if any).
// It returns the response headers.
func (c *Client) Do(method, path string, payload, out any) (http.Header, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Email != "" {
		req.SetBasicAuth(c.Email, c.Password)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Header, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.Header, decodeAPIError(resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.Header, err
		}
	}
	return resp.Header, nil
}

// decodeAPIError understands both error shapes: a list of validation
// messages, and {"message": ...}.
func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{Status: status}
	var msgs []string
	if err := json.Unmarshal(data, &msgs); err == nil {
		apiErr.Messages = msgs
		return apiErr
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Message != "" {
		apiErr.Message = obj.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}
