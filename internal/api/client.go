// Package api is the credentialed REST client for the ConnectNow backend.
// The session rides on a cookie issued by POST /login; every call goes
// through one cookie-jarred http.Client against a fixed base URL.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/codecircle/cctui/internal/state"
	"github.com/m-mizutani/goerr/v2"
	"go.uber.org/zap"
)

// Client calls the backend REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// New creates a client for the given base URL.
func New(baseURL string, logger *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, goerr.Wrap(err, "create cookie jar")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}, nil
}

// do performs one JSON request and returns the raw response body.
// Non-2xx statuses come back as taxonomy errors (see errors.go).
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, goerr.Wrap(err, "encode request body", goerr.V("path", path))
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, goerr.Wrap(err, "build request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, goerr.Wrap(ErrUnreachable, err.Error(), goerr.V("path", path))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "read response", goerr.V("path", path))
	}

	if resp.StatusCode >= 400 {
		msg := serverMessage(respBody)
		c.logger.Warn("api error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		sentinel := classify(resp.StatusCode)
		if sentinel == nil {
			return nil, goerr.New("unexpected status",
				goerr.V("status", resp.StatusCode), goerr.V("path", path))
		}
		return nil, goerr.Wrap(sentinel, "api request failed",
			goerr.V("status", resp.StatusCode),
			goerr.V("path", path),
			goerr.V("message", msg))
	}

	return respBody, nil
}

// serverMessage pulls a human-readable message out of an error body. The
// backend sometimes sends {"message": "..."} and sometimes a bare string.
func serverMessage(body []byte) string {
	var wrapped struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Message != "" {
		return wrapped.Message
	}
	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}
	return ""
}

// unwrapList decodes a list response that may be bare or wrapped in
// {"Data": [...]} / {"data": [...]}.
func unwrapList[T any](body []byte) ([]T, error) {
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}
	var wrapped struct {
		Upper []T `json:"Data"`
		Lower []T `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, goerr.Wrap(err, "decode list response")
	}
	if wrapped.Upper != nil {
		return wrapped.Upper, nil
	}
	return wrapped.Lower, nil
}

// LoginInput are the credentials for POST /login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and returns the user's own profile. The session
// cookie lands in the client's jar.
func (c *Client) Login(ctx context.Context, in LoginInput) (state.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/login", in)
	if err != nil {
		return state.User{}, err
	}
	return decodeUser(body)
}

// SignupInput is the registration form for POST /signup.
type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Signup registers a new account. The caller signs in afterwards.
func (c *Client) Signup(ctx context.Context, in SignupInput) error {
	_, err := c.do(ctx, http.MethodPost, "/signup", in)
	return err
}

// Logout invalidates the session server-side.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", struct{}{})
	return err
}

// ProfileView fetches the current user's profile.
func (c *Client) ProfileView(ctx context.Context) (state.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/profile/view", nil)
	if err != nil {
		return state.User{}, err
	}
	return decodeUser(body)
}

// ProfileInput carries the editable profile fields for PATCH /profile/update.
type ProfileInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	About     string `json:"about,omitempty"`
	Age       int    `json:"age,omitempty"`
	Skills    string `json:"skills,omitempty"`
}

// ProfileUpdate saves profile changes and returns the updated user.
func (c *Client) ProfileUpdate(ctx context.Context, in ProfileInput) (state.User, error) {
	body, err := c.do(ctx, http.MethodPatch, "/profile/update", in)
	if err != nil {
		return state.User{}, err
	}
	return decodeUser(body)
}

// decodeUser handles both a bare user object and a {"data": {...}} wrapper.
func decodeUser(body []byte) (state.User, error) {
	var wrapped struct {
		Data *state.User `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil && wrapped.Data.ID != "" {
		return *wrapped.Data, nil
	}
	var u state.User
	if err := json.Unmarshal(body, &u); err != nil {
		return state.User{}, goerr.Wrap(err, "decode user response")
	}
	return u, nil
}

// Feed fetches the discovery feed and returns the raw payload. Shape
// normalization belongs to the feed slice, which must stay total over
// whatever the server sends.
func (c *Client) Feed(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/feed", nil)
}

// SendRequest records a decision on a feed user.
// status is "interested" or "ignored".
func (c *Client) SendRequest(ctx context.Context, status, userID string) error {
	_, err := c.do(ctx, http.MethodPost, "/request/send/"+status+"/"+userID, struct{}{})
	return err
}

// WithdrawRequest cancels a previously sent request.
func (c *Client) WithdrawRequest(ctx context.Context, userID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/request/withdraw/"+userID, nil)
	return err
}

// ReviewRequest accepts or rejects a received request.
// status is "accepted" or "rejected".
func (c *Client) ReviewRequest(ctx context.Context, status, requestID string) error {
	_, err := c.do(ctx, http.MethodPost, "/request/review/"+status+"/"+requestID, struct{}{})
	return err
}

// Connections fetches the accepted-connection list.
func (c *Client) Connections(ctx context.Context) ([]state.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/user/connections", nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[state.User](body)
}

// RequestsReceived fetches incoming pending requests.
func (c *Client) RequestsReceived(ctx context.Context) ([]state.Request, error) {
	body, err := c.do(ctx, http.MethodGet, "/user/request/received", nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[state.Request](body)
}

// RequestsSent fetches outgoing pending requests.
func (c *Client) RequestsSent(ctx context.Context) ([]state.Request, error) {
	body, err := c.do(ctx, http.MethodGet, "/user/request/sent", nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[state.Request](body)
}

// ChatbotMessage asks the support chatbot one question.
func (c *Client) ChatbotMessage(ctx context.Context, question string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/chatbot/message", map[string]string{"question": question})
	if err != nil {
		return "", err
	}
	var resp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", goerr.Wrap(err, "decode chatbot response")
	}
	return resp.Response, nil
}
