package metrics

import "errors"

// Errors returned by Server.Start and Server.Stop.
var (
	ErrMetricsDisabled   = errors.New("metrics: server disabled by config")
	ErrMetricsRunning    = errors.New("metrics: server already started")
	ErrMetricsNotRunning = errors.New("metrics: server not started")
)
