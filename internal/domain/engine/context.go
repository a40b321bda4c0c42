package engine

import (
	"context"

	"github.com/felixgeelhaar/rigup/internal/ports"
)

// RunContext provides context for step execution (Probe, Apply).
type RunContext struct {
	ctx    context.Context
	logger ports.Logger
}

// NewRunContext creates a new RunContext with the given context.
func NewRunContext(ctx context.Context) RunContext {
	return RunContext{ctx: ctx}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// Logger returns the logger attached to this run, or nil if unset.
func (r RunContext) Logger() ports.Logger {
	return r.logger
}

// WithLogger returns a new RunContext with the logger attached.
func (r RunContext) WithLogger(logger ports.Logger) RunContext {
	return RunContext{ctx: r.ctx, logger: logger}
}
