package formdata

import (
	"log/slog"
)

// DefaultBufferSize is the size of the buffer placed in front of the sink
const DefaultBufferSize = 4096

// Header is one extra part header. Headers are written in slice order and
// duplicate keys are allowed.
type Header struct {
	Key   string
	Value string
}

// Field is one form field rendered as one part.
// An empty Filename or ContentType means the parameter is left out; use
// WriteField with WithFilename("") to send an explicitly empty filename.
type Field struct {
	Name        string
	Value       []byte
	Filename    string
	ContentType string
	Headers     []Header
}

// FieldOption represents an optional part attribute
type FieldOption func(*FieldOptions)

// FieldOptions contains the optional attributes of a part
type FieldOptions struct {
	// Filename is the filename parameter of Content-Disposition. It is
	// written only when HasFilename is set, so it may be empty.
	Filename    string
	HasFilename bool

	// ContentType is the Content-Type header, written only when
	// HasContentType is set
	ContentType    string
	HasContentType bool

	// Headers contains additional part headers, in wire order
	Headers []Header
}

// WithFilename sets the filename parameter of the part
func WithFilename(filename string) FieldOption {
	return func(o *FieldOptions) {
		o.Filename = filename
		o.HasFilename = true
	}
}

// WithContentType sets the Content-Type header of the part
func WithContentType(contentType string) FieldOption {
	return func(o *FieldOptions) {
		o.ContentType = contentType
		o.HasContentType = true
	}
}

// WithHeader appends an extra header to the part
func WithHeader(key, value string) FieldOption {
	return func(o *FieldOptions) {
		o.Headers = append(o.Headers, Header{Key: key, Value: value})
	}
}

// WithHeaders appends extra headers to the part, keeping their order
func WithHeaders(headers ...Header) FieldOption {
	return func(o *FieldOptions) {
		o.Headers = append(o.Headers, headers...)
	}
}

func applyFieldOptions(opts []FieldOption) FieldOptions {
	var o FieldOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WriterOption represents a writer configuration option
type WriterOption func(*WriterOptions)

// WriterOptions contains all writer settings
type WriterOptions struct {
	// Boundary overrides the generated boundary. Used verbatim.
	Boundary string

	// BufferSize is the size of the write buffer in front of the sink.
	// Zero or negative selects DefaultBufferSize.
	BufferSize int

	// Checksum enables a running digest of the bytes handed to the sink
	Checksum ChecksumAlgorithm

	// Progress is called after bytes reach the sink
	Progress ProgressFunc

	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// WithBoundary sets an explicit boundary
func WithBoundary(boundary string) WriterOption {
	return func(o *WriterOptions) {
		o.Boundary = boundary
	}
}

// WithBufferSize sets the size of the write buffer
func WithBufferSize(size int) WriterOption {
	return func(o *WriterOptions) {
		o.BufferSize = size
	}
}

// WithChecksum enables a digest of the produced body
func WithChecksum(algorithm ChecksumAlgorithm) WriterOption {
	return func(o *WriterOptions) {
		o.Checksum = algorithm
	}
}

// WithProgress sets a callback for bytes delivered to the sink
func WithProgress(progress ProgressFunc) WriterOption {
	return func(o *WriterOptions) {
		o.Progress = progress
	}
}

// WithLogger sets the logger used for debug records
func WithLogger(logger *slog.Logger) WriterOption {
	return func(o *WriterOptions) {
		o.Logger = logger
	}
}
