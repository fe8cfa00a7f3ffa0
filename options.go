package lrcembed

import (
	"go.uber.org/zap"
)

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the structured logger. The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Processor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithSniff cross-checks each file's magic bytes against its extension
// before reading tags. A mismatch fails the file instead of letting a
// format writer loose on a mislabeled container.
func WithSniff() Option {
	return func(p *Processor) {
		p.sniff = true
	}
}

// WithValidation re-reads the file through an independent tag parser
// after each write and fails the file when the lyrics did not land.
func WithValidation() Option {
	return func(p *Processor) {
		p.validate = true
	}
}
