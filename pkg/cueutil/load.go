// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MaxDocumentSize caps the size of any CUE document corekit will evaluate.
// Core descriptions are small; anything beyond this is a mistake, not a core.
const MaxDocumentSize int64 = 5 * 1024 * 1024

type (
	// loadOptions holds per-call configuration for Load.
	loadOptions struct {
		filename string
		concrete bool
		maxSize  int64
	}

	// Option configures a Load call.
	Option func(*loadOptions)
)

// WithFilename sets the filename reported in error messages.
func WithFilename(name string) Option {
	return func(o *loadOptions) {
		o.filename = name
	}
}

// WithConcrete controls whether all values must be concrete after
// unification. Defaults to true; the workspace config disables it because
// most of its fields are optional.
func WithConcrete(concrete bool) Option {
	return func(o *loadOptions) {
		o.concrete = concrete
	}
}

// WithMaxSize overrides the MaxDocumentSize limit.
func WithMaxSize(size int64) Option {
	return func(o *loadOptions) {
		o.maxSize = size
	}
}

// Load evaluates a CUE document against an embedded schema and decodes the
// result into T:
//
//  1. compile the schema and look up the root definition (e.g. "#Corefile")
//  2. compile the user document and unify it with the definition
//  3. validate the unified value and decode it into a fresh T
//
// Schema compilation failures are internal errors (the schema ships inside
// the binary); everything else is reported as a PathError carrying the CUE
// path of the offending field.
func Load[T any](schema string, data []byte, defPath string, opts ...Option) (*T, error) {
	o := loadOptions{concrete: true, maxSize: MaxDocumentSize}
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if int64(len(data)) > o.maxSize {
		return nil, fmt.Errorf("%s: document size %d exceeds limit of %d bytes", filename, len(data), o.maxSize)
	}

	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schema)
	if schemaVal.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaVal.Err())
	}

	def := schemaVal.LookupPath(cue.ParsePath(defPath))
	if def.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", defPath, def.Err())
	}

	doc := ctx.CompileBytes(data, cue.Filename(filename))
	if doc.Err() != nil {
		return nil, FormatError(doc.Err(), filename)
	}

	unified := def.Unify(doc)

	var validateOpts []cue.Option
	if o.concrete {
		validateOpts = append(validateOpts, cue.Concrete(true))
	}
	if err := unified.Validate(validateOpts...); err != nil {
		return nil, FormatError(err, filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}

	return &out, nil
}
