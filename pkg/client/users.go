package client

import (
	"context"
	"net/http"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

// Credentials is the payload of the credential exchange.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest is the sign-up payload.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ObtainToken exchanges credentials for a token pair. It returns nil when the
// backend answers without a token payload.
func (c *Client) ObtainToken(ctx context.Context, creds Credentials) (*domain.TokenPair, error) {
	resp, err := c.post(ctx, "/customUser/token/", creds)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.TokenPair](resp), nil
}

// GetMe returns the profile of the session's user.
func (c *Client) GetMe(ctx context.Context) (*domain.User, error) {
	return c.GetMeWithToken(ctx, "")
}

// GetMeWithToken fetches the profile using token explicitly instead of the
// token source. An empty token behaves like GetMe.
func (c *Client) GetMeWithToken(ctx context.Context, token string) (*domain.User, error) {
	req := Request{Method: http.MethodGet, Path: "/customUser/me/"}
	if token != "" {
		req.Header = http.Header{"Authorization": {"Bearer " + token}}
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.User](resp), nil
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, u CreateUserRequest) (*domain.User, error) {
	resp, err := c.post(ctx, "/customUser/create/", u)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.User](resp), nil
}

// ListBlog returns the blog posts.
func (c *Client) ListBlog(ctx context.Context) ([]domain.BlogPost, error) {
	resp, err := c.get(ctx, "/blog", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.BlogPost](resp), nil
}
