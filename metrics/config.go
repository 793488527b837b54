package metrics

import "time"

type Config struct {
	Enabled           bool          `json:"enabled"`
	Path              string        `json:"path"`
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	HttpTimeout       time.Duration `json:"http_timeout"`
	HttpHeaderTimeout time.Duration `json:"http_header_timeout"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:           true,
		Path:              "/metrics",
		Host:              "",
		Port:              8081,
		HttpTimeout:       time.Minute,
		HttpHeaderTimeout: time.Minute,
	}
}
