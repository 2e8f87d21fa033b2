package observability

import (
	"fmt"
	"time"
)

const (
	// EndpointStdout selects the pretty-printing stdout exporters.
	EndpointStdout = "stdout"
	// ProtocolHTTP selects OTLP over HTTP.
	ProtocolHTTP = "http"
	// ProtocolGRPC selects OTLP over gRPC.
	ProtocolGRPC = "grpc"

	defaultServiceName    = "zerodb-client"
	defaultEnvironment    = "development"
	defaultMetricInterval = 60 * time.Second
	defaultBatchTimeout   = 5 * time.Second
)

// Config configures the OpenTelemetry provider. OTLP endpoints are host:port.
type Config struct {
	Enabled     bool          `koanf:"enabled"`
	Service     ServiceConfig `koanf:"service"`
	Environment string        `koanf:"environment"`
	Trace       TraceConfig   `koanf:"trace"`
	Metrics     MetricsConfig `koanf:"metrics"`
}

// ServiceConfig names the service on exported resources.
type ServiceConfig struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`
}

// TraceConfig configures span export.
type TraceConfig struct {
	Enabled      bool              `koanf:"enabled"`
	Endpoint     string            `koanf:"endpoint"`
	Protocol     string            `koanf:"protocol"`
	Insecure     bool              `koanf:"insecure"`
	Headers      map[string]string `koanf:"headers"`
	SampleRate   float64           `koanf:"samplerate"`
	BatchTimeout time.Duration     `koanf:"batchtimeout"`
}

// MetricsConfig configures periodic metric export.
type MetricsConfig struct {
	Enabled  bool              `koanf:"enabled"`
	Endpoint string            `koanf:"endpoint"`
	Protocol string            `koanf:"protocol"`
	Insecure bool              `koanf:"insecure"`
	Headers  map[string]string `koanf:"headers"`
	Interval time.Duration     `koanf:"interval"`
}

// ApplyDefaults fills unset fields. Sample rate is left alone so 0 stays
// expressible; Config loaded through koanf already defaults it to 1.
func (c *Config) ApplyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = "unknown"
	}
	if c.Environment == "" {
		c.Environment = defaultEnvironment
	}
	if c.Trace.Endpoint == "" {
		c.Trace.Endpoint = EndpointStdout
	}
	if c.Trace.Protocol == "" {
		c.Trace.Protocol = ProtocolHTTP
	}
	if c.Trace.BatchTimeout <= 0 {
		c.Trace.BatchTimeout = defaultBatchTimeout
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = EndpointStdout
	}
	if c.Metrics.Protocol == "" {
		c.Metrics.Protocol = ProtocolHTTP
	}
	if c.Metrics.Interval <= 0 {
		c.Metrics.Interval = defaultMetricInterval
	}
}

// Validate checks the config; a disabled config is always valid.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if !c.Enabled {
		return nil
	}
	if c.Trace.SampleRate < 0 || c.Trace.SampleRate > 1 {
		return fmt.Errorf("trace sample rate %v: %w", c.Trace.SampleRate, ErrInvalidSampleRate)
	}
	if err := validateProtocol("trace", c.Trace.Endpoint, c.Trace.Protocol); err != nil {
		return err
	}
	return validateProtocol("metrics", c.Metrics.Endpoint, c.Metrics.Protocol)
}

func validateProtocol(signal, endpoint, protocol string) error {
	if endpoint == EndpointStdout || protocol == "" {
		return nil
	}
	if protocol != ProtocolHTTP && protocol != ProtocolGRPC {
		return fmt.Errorf("%s protocol '%s': %w", signal, protocol, ErrInvalidProtocol)
	}
	return nil
}
