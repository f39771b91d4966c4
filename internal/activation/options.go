package activation

import (
	"log/slog"

	"golang.org/x/text/message"

	"github.com/joeycumines/ten-slots/internal/i18n"
)

// Option configures a Switcher or Executor.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	printer *message.Printer
}

func resolveOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.printer == nil {
		o.printer = i18n.Default()
	}
	return o
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPrinter sets the printer used for user-visible messages. The default
// prints English.
func WithPrinter(p *message.Printer) Option {
	return func(o *options) { o.printer = p }
}
