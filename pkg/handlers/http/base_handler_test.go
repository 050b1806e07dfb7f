package http

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/flowops/flow-ops-backend/pkg/domain/rawdata"
	flowMocks "github.com/flowops/flow-ops-backend/pkg/infra/flowapi/mocks"
	"github.com/flowops/flow-ops-backend/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBaseHandler_NetworkErrorLogsBreakerState(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		field string
	}{
		{
			name:  "breaker open",
			err:   rawdata.NewNetworkError(fmt.Errorf("flow api: %w", gobreaker.ErrOpenState)),
			field: `"breaker_open":true`,
		},
		{
			name:  "half-open limit reached",
			err:   rawdata.NewNetworkError(gobreaker.ErrTooManyRequests),
			field: `"breaker_open":true`,
		},
		{
			name:  "connection refused",
			err:   rawdata.NewNetworkError(errors.New("dial tcp: connection refused")),
			field: `"breaker_open":false`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			client := flowMocks.NewClient(t)
			client.EXPECT().FetchRawData(mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			status, _ := doGet(t, newRawDataApp(newBufferedLogger(&buf), client), rawDataURL)

			assert.Equal(t, fiber.StatusServiceUnavailable, status)
			assert.Contains(t, buf.String(), tt.field)
		})
	}
}

func TestBaseHandler_UpstreamMetricsFollowConfig(t *testing.T) {
	saved := prometheus.Config
	t.Cleanup(func() { prometheus.Config = saved })

	counter := prometheus.UpstreamRequests.WithLabelValues("success")
	fetch := func() {
		client := flowMocks.NewClient(t)
		client.EXPECT().FetchRawData(mock.Anything, mock.Anything).
			Return(&rawdata.Result{Body: []byte(`{}`)}, nil).
			Once()
		status, _ := doGet(t, newRawDataApp(newBufferedLogger(&bytes.Buffer{}), client), rawDataURL)
		assert.Equal(t, fiber.StatusOK, status)
	}

	prometheus.Config = prometheus.MetricsConfig{EnableUpstream: false}
	before := testutil.ToFloat64(counter)
	fetch()
	assert.Equal(t, before, testutil.ToFloat64(counter), "disabled upstream metrics must not count")

	prometheus.Config = prometheus.MetricsConfig{EnableUpstream: true}
	fetch()
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
