package metrics_test

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/dora-safemath/metrics"
)

func TestNewSafeMathInstrumentation(t *testing.T) {
	t.Parallel()

	inst := metrics.NewSafeMathInstrumentation("safemath")
	require.Len(t, inst.Collectors(), 10)

	inst.CounterVecs[metrics.InstrumentationTypeInstructionFailure].
		WithLabelValues("transfer", "Underflow").Inc()
	require.Equal(t, 1.0, testutil.ToFloat64(
		inst.CounterVecs[metrics.InstrumentationTypeInstructionFailure].WithLabelValues("transfer", "Underflow"),
	))

	reg := prometheus.NewRegistry()
	for _, c := range inst.Collectors() {
		require.NoError(t, reg.Register(c))
	}
}

func TestServer_Lifecycle(t *testing.T) {
	t.Parallel()

	srv := metrics.NewServer(metrics.WithPort(0), metrics.WithHost("127.0.0.1"))
	require.NoError(t, srv.Register(metrics.NewSafeMathInstrumentation("lifecycle")))
	require.Equal(t, "/metrics", srv.Path())

	require.ErrorIs(t, srv.Stop(), metrics.ErrMetricsNotRunning)
	require.Nil(t, srv.Addr())
	require.NoError(t, srv.Start())
	require.NotNil(t, srv.Addr())
	require.ErrorIs(t, srv.Start(), metrics.ErrMetricsRunning)
	require.NoError(t, srv.Stop())
	require.Nil(t, srv.Addr())

	// a stopped server can be started again
	require.NoError(t, srv.Start())
	require.NoError(t, srv.Stop())

	disabled := metrics.NewServer(metrics.WithEnabled(false))
	require.ErrorIs(t, disabled.Start(), metrics.ErrMetricsDisabled)
	require.ErrorIs(t, disabled.Stop(), metrics.ErrMetricsDisabled)
}

func TestServer_RegisterTwice(t *testing.T) {
	t.Parallel()

	inst := metrics.NewSafeMathInstrumentation("twice")
	srv := metrics.NewServer()
	require.NoError(t, srv.Register(inst))
	require.ErrorContains(t, srv.Register(inst), "failed to register collector")
}

func TestStartMetricsServer_Disabled(t *testing.T) {
	t.Parallel()

	cfg := metrics.DefaultConfig()
	cfg.Enabled = false
	inst := metrics.NewSafeMathInstrumentation("disabled")

	srv, err := metrics.StartMetricsServer(cfg, inst, zerolog.Nop(), "v0.0.0-test")
	require.ErrorIs(t, err, metrics.ErrMetricsDisabled)
	require.NotNil(t, srv)
	require.Equal(t, 1.0, testutil.ToFloat64(
		inst.GaugeVecs[metrics.InstrumentationTypeVersion].WithLabelValues("v0.0.0-test"),
	))
}

func TestServer_PortInUse(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	srv := metrics.NewServer(
		metrics.WithHost("127.0.0.1"),
		metrics.WithPort(busy.Addr().(*net.TCPAddr).Port),
	)
	err = srv.Start()
	require.ErrorContains(t, err, "metrics: listen on")
	require.Nil(t, srv.Addr())
	require.ErrorIs(t, srv.Stop(), metrics.ErrMetricsNotRunning)
}

func TestStartMetricsServer_CustomPath(t *testing.T) {
	t.Parallel()

	cfg := metrics.DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.Path = "/custom"
	inst := metrics.NewSafeMathInstrumentation("custom_path")
	inst.CounterVecs[metrics.InstrumentationTypeInstructionCount].WithLabelValues("transfer").Inc()

	var logs bytes.Buffer
	srv, err := metrics.StartMetricsServer(cfg, inst, zerolog.New(&logs), "v1.2.3")
	require.NoError(t, err)
	require.Equal(t, "/custom", srv.Path())

	families, err := srv.Registry().Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	base := fmt.Sprintf("http://%s", srv.Addr())

	resp, err := http.Get(base + "/custom")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `custom_path_version{version="v1.2.3"} 1`)
	require.Contains(t, string(body), `custom_path_instruction_total{instruction="transfer"} 1`)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, srv.Stop())
	require.Contains(t, logs.String(), "starting metrics server")
	require.NotContains(t, logs.String(), "stopped unexpectedly")
}
