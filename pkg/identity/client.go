package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Checker is the slice of the provider this service depends on. Satisfied by
// *Client; test doubles implement it directly.
type Checker interface {
	CheckAdmin(ctx context.Context, sessionToken string) (bool, error)
}

// Client calls the external identity provider. Sign-in, sign-up and session
// issuance all happen on the provider's side; this client only performs
// lookups against already-issued session tokens.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new identity provider client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// CheckAdmin asks the provider whether the session token belongs to an admin.
func (c *Client) CheckAdmin(ctx context.Context, sessionToken string) (bool, error) {
	body, err := c.doRequest(ctx, "check-admin", sessionToken)
	if err != nil {
		return false, err
	}

	var resp CheckAdminResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("failed to unmarshal check-admin response: %w", err)
	}

	return resp.IsAdmin, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint, sessionToken string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.config.BaseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	if c.config.APIKey != "" {
		req.Header.Set("X-API-Key", c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("identity provider error: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("identity provider error: status %d", resp.StatusCode)
	}

	return body, nil
}
