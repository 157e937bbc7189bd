package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"wvw-tracker/internal/config"
	"wvw-tracker/internal/constants"
)

// GW2Client talks to the official game API for account linking. The API key
// arrives per request from the uploader; the client never stores one.
type GW2Client struct {
	base   string
	client *fasthttp.Client
}

type TokenInfoResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	World int    `json:"world"`
}

func NewGW2Client(cfg *config.Config) *GW2Client {
	return &GW2Client{
		base: cfg.GW2APIBase,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.GW2APITimeout,
			WriteTimeout:        constants.GW2APITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *GW2Client) GetTokenInfo(ctx context.Context, apiKey string) (*TokenInfoResponse, error) {
	return doRequest[TokenInfoResponse](ctx, c, c.base+"/v2/tokeninfo", apiKey)
}

func (c *GW2Client) GetAccount(ctx context.Context, apiKey string) (*AccountResponse, error) {
	return doRequest[AccountResponse](ctx, c, c.base+"/v2/account", apiKey)
}

func doRequest[T any](ctx context.Context, client *GW2Client, url, apiKey string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+apiKey)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.GW2APITimeout)
	}
	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("gw2 api request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("gw2 api returned status %d", resp.StatusCode())
	}

	var out T
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("gw2 api response unmarshal failed: %w", err)
	}
	return &out, nil
}
