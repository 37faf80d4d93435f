package formdata

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const crlf = "\r\n"

// Writer encodes form fields as a multipart/form-data body onto a sink of
// type W. It owns the sink until Finish returns it.
//
// A Writer must be created with NewWriter or NewWriterWithBoundary; the zero
// value is not usable. A Writer is not safe for concurrent use. Fields appear on the wire in the
// order they are written. After Finish, every method that would write returns
// ErrFinished.
type Writer[W io.Writer] struct {
	sink     W
	out      *sinkWriter
	buf      *bufio.Writer
	boundary string
	logger   *slog.Logger
	checksum string
	parts    int
	err      error
	finished bool
}

// NewWriter creates a writer on sink with a freshly generated boundary,
// unless WithBoundary is given.
func NewWriter[W io.Writer](sink W, opts ...WriterOption) *Writer[W] {
	o := resolveWriterOptions(opts)
	if o.Boundary == "" {
		o.Boundary = GenerateBoundary()
	}
	return newWriter(sink, o)
}

// NewWriterWithBoundary creates a writer on sink that uses boundary verbatim.
// The boundary is not validated; the caller asserts it does not occur inside
// any field value or header.
func NewWriterWithBoundary[W io.Writer](sink W, boundary string, opts ...WriterOption) *Writer[W] {
	o := resolveWriterOptions(opts)
	o.Boundary = boundary
	return newWriter(sink, o)
}

func resolveWriterOptions(opts []WriterOption) WriterOptions {
	var o WriterOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

func newWriter[W io.Writer](sink W, o WriterOptions) *Writer[W] {
	out := &sinkWriter{sink: sink, progress: o.Progress}
	w := &Writer[W]{
		sink:     sink,
		out:      out,
		buf:      bufio.NewWriterSize(out, o.BufferSize),
		boundary: o.Boundary,
		logger:   o.Logger,
	}
	if o.Checksum != "" {
		h, err := NewHasher(o.Checksum)
		if err != nil {
			// Reported by the first write so constructors stay infallible.
			w.err = err
		}
		out.hasher = h
	}
	return w
}

// Boundary returns the boundary used by the writer
func (w *Writer[W]) Boundary() string {
	return w.boundary
}

// FormDataContentType returns the value for the Content-Type header of the
// produced body. Setting the header is up to the caller.
func (w *Writer[W]) FormDataContentType() string {
	return formDataContentType(w.boundary)
}

func formDataContentType(boundary string) string {
	// Quote boundaries that are not RFC 2045 tokens
	if strings.ContainsAny(boundary, `()<>@,;:\"/[]?= `) {
		boundary = `"` + boundary + `"`
	}
	return "multipart/form-data; boundary=" + boundary
}

// Written returns the number of bytes delivered to the sink so far. Bytes
// still held in the write buffer are not counted.
func (w *Writer[W]) Written() int64 {
	return w.out.written
}

// Parts returns the number of parts written
func (w *Writer[W]) Parts() int {
	return w.parts
}

// Checksum returns the hex digest of the whole body once Finish succeeded
// with WithChecksum set. Otherwise it returns "".
func (w *Writer[W]) Checksum() string {
	return w.checksum
}

// WriteField appends one part holding value.
//
// Names, filenames and header values are written as given, without quoting
// or escaping; a value containing '"' or CRLF corrupts the framing.
func (w *Writer[W]) WriteField(name string, value []byte, opts ...FieldOption) error {
	return w.writePart(name, applyFieldOptions(opts), func(dst io.Writer) error {
		_, err := dst.Write(value)
		return err
	})
}

// WriteTextField appends a plain part with no filename, content type or
// extra headers.
func (w *Writer[W]) WriteTextField(name, value string) error {
	return w.writePart(name, FieldOptions{}, func(dst io.Writer) error {
		_, err := io.WriteString(dst, value)
		return err
	})
}

// WritePart appends f as one part
func (w *Writer[W]) WritePart(f Field) error {
	opts := []FieldOption{WithHeaders(f.Headers...)}
	if f.Filename != "" {
		opts = append(opts, WithFilename(f.Filename))
	}
	if f.ContentType != "" {
		opts = append(opts, WithContentType(f.ContentType))
	}
	return w.WriteField(f.Name, f.Value, opts...)
}

// WriteFieldFrom appends one part whose value is streamed from r until EOF.
// A read error from r leaves a torn part in the sink and is returned as a
// *SourceError; the writer is unusable afterwards.
func (w *Writer[W]) WriteFieldFrom(name string, r io.Reader, opts ...FieldOption) error {
	src := &sourceReader{r: r, field: name}
	return w.writePart(name, applyFieldOptions(opts), func(dst io.Writer) error {
		_, err := io.Copy(dst, src)
		return err
	})
}

func (w *Writer[W]) writePart(name string, o FieldOptions, body func(io.Writer) error) error {
	if err := w.usable(); err != nil {
		return fmt.Errorf("write field %q: %w", name, err)
	}

	if _, err := w.buf.WriteString(w.partHeader(name, o)); err != nil {
		return w.fail("write", name, err)
	}
	if err := body(w.buf); err != nil {
		var srcErr *SourceError
		if errors.As(err, &srcErr) {
			w.err = srcErr
			w.logger.Warn("multipart source read failed", "field", name, "error", srcErr.Err)
			return w.err
		}
		return w.fail("write", name, err)
	}
	if _, err := w.buf.WriteString(crlf); err != nil {
		return w.fail("write", name, err)
	}

	w.parts++
	w.logger.Debug("multipart part written",
		"field", name,
		"filename", o.Filename,
		"content_type", o.ContentType,
		"headers", len(o.Headers),
	)
	return nil
}

// partHeader renders the boundary line and the part headers, up to and
// including the blank line before the value.
func (w *Writer[W]) partHeader(name string, o FieldOptions) string {
	var b strings.Builder
	b.WriteString("--")
	b.WriteString(w.boundary)
	b.WriteString(crlf)

	b.WriteString(`Content-Disposition: form-data; name="`)
	b.WriteString(name)
	b.WriteByte('"')
	if o.HasFilename {
		b.WriteString(`; filename="`)
		b.WriteString(o.Filename)
		b.WriteByte('"')
	}
	b.WriteString(crlf)

	if o.HasContentType {
		b.WriteString("Content-Type: ")
		b.WriteString(o.ContentType)
		b.WriteString(crlf)
	}
	for _, h := range o.Headers {
		b.WriteString(h.Key)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteString(crlf)
	}
	b.WriteString(crlf)
	return b.String()
}

// Finish writes the closing delimiter "--" + boundary + "--", flushes the
// buffer and hands the sink back. No CRLF follows the closing delimiter.
//
// Finish must be called exactly once. The sink is returned even on error so
// the caller can dispose of it; its content is then incomplete. A second call
// returns ErrFinished.
func (w *Writer[W]) Finish() (W, error) {
	if w.finished {
		var zero W
		return zero, fmt.Errorf("finish: %w", ErrFinished)
	}
	defer func() { w.finished = true }()

	if w.err != nil {
		return w.sink, w.err
	}

	if _, err := w.buf.WriteString("--" + w.boundary + "--"); err != nil {
		return w.sink, w.fail("finish", "", err)
	}
	if err := w.buf.Flush(); err != nil {
		return w.sink, w.fail("finish", "", err)
	}

	if w.out.hasher != nil {
		w.checksum = hex.EncodeToString(w.out.hasher.Sum(nil))
	}
	w.logger.Debug("multipart body finished",
		"boundary", w.boundary,
		"parts", w.parts,
		"bytes", w.out.written,
	)
	return w.sink, nil
}

func (w *Writer[W]) usable() error {
	if w.finished {
		return ErrFinished
	}
	return w.err
}

// fail records a sink failure. The writer keeps returning it.
func (w *Writer[W]) fail(op, field string, err error) error {
	w.err = &WriteError{Op: op, Field: field, Err: err}
	w.logger.Warn("multipart sink write failed", "op", op, "field", field, "error", err)
	return w.err
}

// sourceReader tags read errors so they can be told apart from sink
// failures after io.Copy.
type sourceReader struct {
	r     io.Reader
	field string
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		return n, &SourceError{Field: s.field, Err: err}
	}
	return n, err
}
