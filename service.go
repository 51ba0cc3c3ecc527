package translatable

import (
	"io"
	"log/slog"
)

// ServiceOption configures a service during construction.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	log *slog.Logger
}

func defaultServiceOptions() *serviceOptions {
	return &serviceOptions{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for debug-level mutation logging.
// By default log records are discarded.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if log != nil {
			o.log = log
		}
	}
}
