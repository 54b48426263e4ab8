// Package notify is the outcome notification surface. The core never renders
// UI; it emits (message, severity) pairs and sinks decide where they go.
package notify

import "go.uber.org/zap"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

type Sink interface {
	Notify(message string, severity Severity)
}

// ZapSink writes notifications to the structured log.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Notify(message string, severity Severity) {
	switch severity {
	case SeverityDanger:
		s.logger.Error("transaction notification", zap.String("severity", string(severity)), zap.String("message", message))
	case SeverityWarning:
		s.logger.Warn("transaction notification", zap.String("severity", string(severity)), zap.String("message", message))
	default:
		s.logger.Info("transaction notification", zap.String("severity", string(severity)), zap.String("message", message))
	}
}

// MultiSink fans a notification out to several sinks.
type MultiSink []Sink

func (m MultiSink) Notify(message string, severity Severity) {
	for _, s := range m {
		s.Notify(message, severity)
	}
}
