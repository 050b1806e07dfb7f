package flowapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/flowops/flow-ops-backend/pkg/config"
	"github.com/flowops/flow-ops-backend/pkg/domain/rawdata"
	"github.com/flowops/flow-ops-backend/pkg/infra/httpx"
)

// RawDataPath is appended to the configured base URL.
const RawDataPath = "/api/v1/metrics/productivity/burn/raw-data"

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	// FetchRawData performs exactly one GET against the Flow API. Every
	// returned error is a *rawdata.Error.
	FetchRawData(ctx context.Context, query rawdata.Query) (*rawdata.Result, error)
}

type client struct {
	cfg        config.FlowConfig
	httpClient httpx.Client
}

func NewClient(cfg config.FlowConfig, httpClient httpx.Client) Client {
	return &client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

func (c *client) FetchRawData(ctx context.Context, query rawdata.Query) (*rawdata.Result, error) {
	if !c.cfg.HasToken() {
		return nil, rawdata.NewConfigurationError(rawdata.ErrTokenNotConfigured)
	}

	req, err := c.newRawDataRequest(ctx, query)
	if err != nil {
		return nil, rawdata.NewInternalError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rawdata.NewNetworkError(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, rawdata.NewUpstreamStatusError(resp.StatusCode, string(body))
	}

	result, err := rawdata.NewResult(body)
	if err != nil {
		return nil, rawdata.NewInternalError(err)
	}
	return result, nil
}

func (c *client) newRawDataRequest(ctx context.Context, query rawdata.Query) (*http.Request, error) {
	target, err := url.Parse(c.cfg.BaseURL + RawDataPath)
	if err != nil {
		return nil, fmt.Errorf("invalid flow api base url %q: %w", c.cfg.BaseURL, err)
	}
	target.RawQuery = query.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build flow api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	return req, nil
}

func classifyTransportError(err error) error {
	switch {
	case httpx.IsTimeout(err):
		return rawdata.NewTimeoutError(err)
	case errors.Is(err, httpx.ErrDecodeBody):
		return rawdata.NewInternalError(err)
	default:
		return rawdata.NewNetworkError(err)
	}
}
