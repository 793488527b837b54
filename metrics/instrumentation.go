package metrics

import "github.com/prometheus/client_golang/prometheus"

// InstrumentationType is the type of instrumentation the metric is capturing
type InstrumentationType uint64

const (
	InstrumentationTypeVersion InstrumentationType = iota
	InstrumentationTypeInstructionCount
	InstrumentationTypeInstructionDuration
	InstrumentationTypeInstructionSuccess
	InstrumentationTypeInstructionFailure
	InstrumentationTypeRequestCount
	InstrumentationTypeRequestDuration
	InstrumentationTypeRequestSuccess
	InstrumentationTypeRequestFailure
	InstrumentationTypeTransportFailure
)

// Label names used by NewSafeMathInstrumentation.
const (
	LabelVersion     = "version"
	LabelInstruction = "instruction"
	LabelKind        = "kind"
	LabelTransport   = "transport"
	LabelProcedure   = "procedure"
)

// Instrumentation holds the collectors of one component, keyed by what they measure.
type Instrumentation struct {
	namespace     string
	CounterVecs   map[InstrumentationType]*prometheus.CounterVec
	GaugeVecs     map[InstrumentationType]*prometheus.GaugeVec
	HistogramVecs map[InstrumentationType]*prometheus.HistogramVec
}

func NewInstrumentation(namespace string, opts ...InstrumentationOption) *Instrumentation {
	instrumentation := &Instrumentation{
		namespace:     namespace,
		CounterVecs:   make(map[InstrumentationType]*prometheus.CounterVec),
		GaugeVecs:     make(map[InstrumentationType]*prometheus.GaugeVec),
		HistogramVecs: make(map[InstrumentationType]*prometheus.HistogramVec),
	}

	for _, opt := range opts {
		opt(instrumentation)
	}
	return instrumentation
}

// Collectors returns every collector held by i, for registration.
func (i *Instrumentation) Collectors() (collectors []prometheus.Collector) {
	for _, c := range i.CounterVecs {
		collectors = append(collectors, c)
	}
	for _, g := range i.GaugeVecs {
		collectors = append(collectors, g)
	}
	for _, h := range i.HistogramVecs {
		collectors = append(collectors, h)
	}
	return
}

// NewSafeMathInstrumentation returns the collectors recorded by the host executor and
// the transport interceptors.
func NewSafeMathInstrumentation(namespace string) *Instrumentation {
	requestLabels := []string{LabelTransport, LabelProcedure}
	return NewInstrumentation(namespace,
		WithGaugeVec(InstrumentationTypeVersion, "version", "Build version of the running binary", []string{LabelVersion}),
		WithCounterVec(InstrumentationTypeInstructionCount, "instruction_total", "Instructions executed", []string{LabelInstruction}),
		WithHistogramVec(InstrumentationTypeInstructionDuration, "instruction_duration_seconds", "Instruction execution time", []string{LabelInstruction}, prometheus.DefBuckets),
		WithCounterVec(InstrumentationTypeInstructionSuccess, "instruction_success_total", "Instructions that completed", []string{LabelInstruction}),
		WithCounterVec(InstrumentationTypeInstructionFailure, "instruction_failure_total", "Instructions aborted, by arithmetic error kind", []string{LabelInstruction, LabelKind}),
		WithCounterVec(InstrumentationTypeRequestCount, "request_total", "Unary requests received", requestLabels),
		WithHistogramVec(InstrumentationTypeRequestDuration, "request_duration_seconds", "Unary request handling time", requestLabels, prometheus.DefBuckets),
		WithCounterVec(InstrumentationTypeRequestSuccess, "request_success_total", "Unary requests that returned no error", requestLabels),
		WithCounterVec(InstrumentationTypeRequestFailure, "request_failure_total", "Unary requests that returned an error", requestLabels),
		WithCounterVec(InstrumentationTypeTransportFailure, "transport_arithmetic_failure_total", "Arithmetic errors converted at a transport boundary", []string{LabelTransport, LabelKind}),
	)
}
