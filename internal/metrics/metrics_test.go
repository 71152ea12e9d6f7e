package metrics_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryvavyipotii/ripemd160attack/internal/metrics"
)

func TestIterationsTotalIncrementsByKind(t *testing.T) {
	before := testutil.ToFloat64(metrics.IterationsTotal.WithLabelValues("bruteforce"))

	metrics.IterationsTotal.WithLabelValues("bruteforce").Inc()

	after := testutil.ToFloat64(metrics.IterationsTotal.WithLabelValues("bruteforce"))
	assert.Equal(t, before+1, after)
}

func TestServerExposesMetricsEndpoint(t *testing.T) {
	srv := metrics.NewServer("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	errCh := srv.Start(ctx)

	defer func() {
		cancel()
		<-errCh
	}()

	var (
		resp *http.Response
		err  error
	)
	for i := 0; i < 50; i++ {
		resp, err = http.Get(fmt.Sprintf("http://%s/metrics", srv.Addr()))
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "attackbench_iterations_total")
}
