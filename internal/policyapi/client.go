// Package policyapi talks to the policy backend's REST endpoints.
package policyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ghaggin/policy-portal/internal/config"
	"github.com/ghaggin/policy-portal/internal/model"
)

const requestIDHeader = "X-Request-ID"

var (
	errEmptyBaseURL = errors.New("policy api base url is empty")
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *zap.Logger
}

type Params struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

func New(p Params) (*Client, error) {
	return NewWithHTTPClient(p.Config.API, &http.Client{Timeout: p.Config.API.Timeout}, p.Log)
}

func NewWithHTTPClient(cfg config.API, httpClient *http.Client, log *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errEmptyBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse policy api base url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		log:     log,
	}, nil
}

// ListPolicies returns the whole catalog. It needs no credentials.
func (c *Client) ListPolicies(ctx context.Context) ([]model.Policy, error) {
	var policies []model.Policy
	if err := c.do(ctx, http.MethodGet, "/api/policies", "", nil, &policies); err != nil {
		return nil, err
	}
	if policies == nil {
		policies = []model.Policy{}
	}
	return policies, nil
}

// MyPolicies returns the policies owned by email.
func (c *Client) MyPolicies(ctx context.Context, bearer, email string) ([]model.Policy, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	var policies []model.Policy
	if err := c.do(ctx, http.MethodPost, "/api/policies/my-policies", bearer, body, &policies); err != nil {
		return nil, err
	}
	if policies == nil {
		policies = []model.Policy{}
	}
	return policies, nil
}

func (c *Client) TakePolicy(ctx context.Context, bearer string, req model.TakeRequest) error {
	return c.do(ctx, http.MethodPost, "/api/policies/take", bearer, req, nil)
}

func (c *Client) DeletePolicy(ctx context.Context, bearer, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/policies/"+url.PathEscape(id), bearer, nil, nil)
}

func (c *Client) CreatePolicy(ctx context.Context, bearer string, policy model.Policy) (*model.Policy, error) {
	created := &model.Policy{}
	if err := c.do(ctx, http.MethodPost, "/api/policies", bearer, policy, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	req.Header.Set(requestIDHeader, requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Message
		}
		c.log.Debug("policy api returned error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// requestID forwards the id chi assigned to the incoming request, or makes
// a new one for calls made outside a request.
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
