// Package remote holds the HTTP clients for the two external collaborators:
// the user-directory service consulted at sign-up and the feedback endpoint
// submissions are relayed to.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const defaultHTTPTimeout = 10 * time.Second

// DirectoryClient talks to the external user-directory service. Callers treat
// every error as non-fatal: sign-up proceeds without a directory id.
type DirectoryClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewDirectoryClient(baseURL string, log zerolog.Logger) *DirectoryClient {
	return &DirectoryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		log:     log,
	}
}

type directoryUser struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

// FindOrCreate resolves the remote record id for the identity, creating one
// when the directory has no match.
func (c *DirectoryClient) FindOrCreate(ctx context.Context, email, name string) (string, error) {
	existing, err := c.find(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return existing, nil
	}
	return c.create(ctx, email, name)
}

func (c *DirectoryClient) find(ctx context.Context, email string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/users?email="+url.QueryEscape(email), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("directory lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("directory lookup: unexpected status %d", resp.StatusCode)
	}

	var users []directoryUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return "", fmt.Errorf("directory lookup: decode: %w", err)
	}
	if len(users) == 0 {
		return "", nil
	}
	return users[0].ID.String(), nil
}

func (c *DirectoryClient) create(ctx context.Context, email, name string) (string, error) {
	body, err := json.Marshal(map[string]string{"name": name, "email": email})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("directory create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("directory create: unexpected status %d", resp.StatusCode)
	}

	var created directoryUser
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("directory create: decode: %w", err)
	}

	c.log.Debug().Str("email", email).Str("directory_id", created.ID.String()).Msg("directory record created")
	return created.ID.String(), nil
}
