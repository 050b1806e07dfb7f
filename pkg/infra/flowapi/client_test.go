package flowapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flowops/flow-ops-backend/pkg/config"
	"github.com/flowops/flow-ops-backend/pkg/domain/rawdata"
	"github.com/flowops/flow-ops-backend/pkg/infra/flowapi"
	"github.com/flowops/flow-ops-backend/pkg/infra/httpx"
	"github.com/flowops/flow-ops-backend/pkg/infra/httpx/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testQuery = rawdata.Query{StartDate: "2024-01-01", EndDate: "2024-01-31", Page: 2, ItemsPerPage: 50}

func flowConfig(baseURL string) config.FlowConfig {
	return config.FlowConfig{BaseURL: baseURL, Token: "test-token", Timeout: 2 * time.Second}
}

func requireKind(t *testing.T, err error, kind rawdata.ErrorKind) *rawdata.Error {
	t.Helper()
	var rdErr *rawdata.Error
	require.True(t, errors.As(err, &rdErr), "expected *rawdata.Error, got %T: %v", err, err)
	assert.Equal(t, kind, rdErr.Kind)
	return rdErr
}

func TestFetchRawData_Success(t *testing.T) {
	received := make(chan *http.Request, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"a":1}],"total_items":1}`))
	}))
	defer ts.Close()

	client := flowapi.NewClient(flowConfig(ts.URL), httpx.NewFastHTTPClient())

	result, err := client.FetchRawData(context.Background(), testQuery)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[{"a":1}],"total_items":1}`, string(result.Body))
	assert.True(t, result.HasItems)
	assert.Equal(t, 1, result.ItemCount)

	req := <-received
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, flowapi.RawDataPath, req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
	assert.Equal(t, "2024-01-01", req.URL.Query().Get("start_date"))
	assert.Equal(t, "2024-01-31", req.URL.Query().Get("end_date"))
	assert.Equal(t, "2", req.URL.Query().Get("page"))
	assert.Equal(t, "50", req.URL.Query().Get("items_per_page"))
}

func TestFetchRawData_BaseURLWithPathPrefix(t *testing.T) {
	received := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := flowapi.NewClient(flowConfig(ts.URL+"/flow-ops-api"), httpx.NewFastHTTPClient())

	_, err := client.FetchRawData(context.Background(), testQuery)
	require.NoError(t, err)
	assert.Equal(t, "/flow-ops-api"+flowapi.RawDataPath, <-received)
}

func TestFetchRawData_MissingToken(t *testing.T) {
	httpClient := mocks.NewMockHTTPClient(t)
	cfg := flowConfig("http://flow.invalid")
	cfg.Token = ""

	_, err := flowapi.NewClient(cfg, httpClient).FetchRawData(context.Background(), testQuery)

	rdErr := requireKind(t, err, rawdata.KindConfiguration)
	assert.ErrorIs(t, rdErr, rawdata.ErrTokenNotConfigured)
	httpClient.AssertNotCalled(t, "Do", mock.Anything)
}

func TestFetchRawData_UpstreamStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`"not found"`))
	}))
	defer ts.Close()

	_, err := flowapi.NewClient(flowConfig(ts.URL), httpx.NewFastHTTPClient()).
		FetchRawData(context.Background(), testQuery)

	rdErr := requireKind(t, err, rawdata.KindUpstreamStatus)
	assert.Equal(t, http.StatusNotFound, rdErr.StatusCode)
	assert.Equal(t, `"not found"`, rdErr.Body)
}

func TestFetchRawData_InvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer ts.Close()

	_, err := flowapi.NewClient(flowConfig(ts.URL), httpx.NewFastHTTPClient()).
		FetchRawData(context.Background(), testQuery)

	requireKind(t, err, rawdata.KindInternal)
}

func TestFetchRawData_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(ts.Close)
	t.Cleanup(func() { close(release) })

	client := flowapi.NewClient(flowConfig(ts.URL), httpx.NewFastHTTPClient(httpx.WithTimeout(50*time.Millisecond)))

	_, err := client.FetchRawData(context.Background(), testQuery)
	requireKind(t, err, rawdata.KindTimeout)
}

func TestFetchRawData_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := ts.URL
	ts.Close()

	_, err := flowapi.NewClient(flowConfig(baseURL), httpx.NewFastHTTPClient()).
		FetchRawData(context.Background(), testQuery)

	rdErr := requireKind(t, err, rawdata.KindNetwork)
	assert.NotNil(t, rdErr.Err)
}

func TestFetchRawData_ClassifiesTransportErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind rawdata.ErrorKind
	}{
		{name: "deadline", err: context.DeadlineExceeded, kind: rawdata.KindTimeout},
		{name: "refused", err: errors.New("dial tcp 10.0.0.1:443: connect: connection refused"), kind: rawdata.KindNetwork},
		{name: "decode", err: httpx.ErrDecodeBody, kind: rawdata.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpClient := mocks.NewMockHTTPClient(t)
			httpClient.On("Do", mock.Anything).Return(nil, tt.err).Once()

			_, err := flowapi.NewClient(flowConfig("http://flow.invalid"), httpClient).
				FetchRawData(context.Background(), testQuery)

			rdErr := requireKind(t, err, tt.kind)
			assert.ErrorIs(t, rdErr, tt.err)
		})
	}
}

func TestFetchRawData_Idempotent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"team_name":"core"}],"page":` + r.URL.Query().Get("page") + `}`))
	}))
	defer ts.Close()

	client := flowapi.NewClient(flowConfig(ts.URL), httpx.NewFastHTTPClient())

	first, err := client.FetchRawData(context.Background(), testQuery)
	require.NoError(t, err)
	second, err := client.FetchRawData(context.Background(), testQuery)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
