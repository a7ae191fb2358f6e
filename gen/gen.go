// Package gen contains the generator interface and utils for working with generators.
package gen

import (
	"context"
	"fmt"
	"io"

	"github.com/dsgen/dsgen/schema"
)

// Generator provides a simple API for creating a code generator for
// any output flavor desired.
type Generator interface {
	// Generate handles converting a parsed schema to source text and
	// writing it to the GeneratorContext carried by ctx.
	Generate(ctx context.Context, s *schema.Schema, opts map[string]interface{}) error
}

// GeneratorContext represents the directory to which
// the Generator is to write to.
type GeneratorContext interface {
	// Open opens a file in the GeneratorContext (i.e. directory).
	Open(filename string) (io.WriteCloser, error)
}

type genCtx string

var genCtxKey = genCtx("genCtx")

// WithContext returns a prepared context.Context
// with the given GeneratorContext.
func WithContext(ctx context.Context, gCtx GeneratorContext) context.Context {
	return context.WithValue(ctx, genCtxKey, gCtx)
}

// Context returns the generator context.
func Context(ctx context.Context) GeneratorContext {
	return ctx.Value(genCtxKey).(GeneratorContext)
}

// GeneratorError represents an error from a generator.
type GeneratorError struct {
	// DocName is the document being worked on when error was encountered.
	DocName string

	// GenName is the generator name which encountered a problem.
	GenName string

	// Msg is any message the generator wants to provide back to the caller.
	Msg string
}

func (e GeneratorError) Error() string {
	return fmt.Sprintf("dsgen: generator error occurred in %s:%s %s", e.GenName, e.DocName, e.Msg)
}
