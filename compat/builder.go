package compat

import (
	"fmt"

	"github.com/lixenwraith/logdw"
)

// RecordWriter is the textual write entry point the adapters forward to.
// *logdw.Transport satisfies it.
type RecordWriter interface {
	Write(prio logdw.Priority, tag, msg string) (int, error)
}

// Builder creates adapters for gnet, fasthttp and Fiber that share one transport.
// It can use an existing writer or build a transport from a *logdw.Config.
type Builder struct {
	writer RecordWriter
	cfg    *logdw.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithWriter specifies an existing writer to use for the adapters.
// If this is set WithConfig is ignored.
func (b *Builder) WithWriter(w RecordWriter) *Builder {
	if w == nil {
		b.err = fmt.Errorf("logdw/compat: provided writer cannot be nil")
		return b
	}
	b.writer = w
	return b
}

// WithConfig provides a configuration for a new transport.
// Used only if no writer was provided; without either, the default transport is used.
func (b *Builder) WithConfig(cfg *logdw.Config) *Builder {
	b.cfg = cfg
	return b
}

// getWriter resolves the writer to be used, creating a transport if necessary
func (b *Builder) getWriter() (RecordWriter, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.writer != nil {
		return b.writer, nil
	}

	if b.cfg == nil {
		b.writer = logdw.Default()
		return b.writer, nil
	}

	t := logdw.NewTransport()
	if err := t.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	// Cache the transport for subsequent builds with this builder
	b.writer = t
	return t, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	w, err := b.getWriter()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(w, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	w, err := b.getWriter()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(w, opts...), nil
}

// BuildStructuredGnet creates a gnet adapter that renders extracted fields as key=value pairs
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	w, err := b.getWriter()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(w, opts...), nil
}

// BuildFiber creates a Fiber adapter
func (b *Builder) BuildFiber(opts ...FiberOption) (*FiberAdapter, error) {
	w, err := b.getWriter()
	if err != nil {
		return nil, err
	}
	return NewFiberAdapter(w, opts...), nil
}

// GetWriter returns the resolved writer, creating it if needed
func (b *Builder) GetWriter() (RecordWriter, error) {
	return b.getWriter()
}
