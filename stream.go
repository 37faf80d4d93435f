package formdata

import (
	"io"
)

// BuildFunc writes the fields of a body. It must not call Finish.
type BuildFunc func(w *Writer[*io.PipeWriter]) error

// Body streams a multipart body to its reader as it is produced, without
// holding the whole payload in memory. Use it as an HTTP request body and
// send ContentType as the Content-Type header.
type Body struct {
	io.ReadCloser
	boundary string
}

// Pipe starts a producer goroutine that runs build against a fresh writer
// and then finishes it. The returned Body yields the encoded bytes; a build
// or sink error is returned to the reader in place of EOF.
//
// Closing the Body before reaching EOF makes the producer's next write fail
// and the goroutine exit.
func Pipe(build BuildFunc, opts ...WriterOption) *Body {
	pr, pw := io.Pipe()

	// The writer is created here so Boundary is known before any byte is read.
	w := NewWriter(pw, opts...)

	go func() {
		if err := build(w); err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := w.Finish(); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.Close()
	}()

	return &Body{ReadCloser: pr, boundary: w.Boundary()}
}

// Boundary returns the boundary of the streamed body
func (b *Body) Boundary() string {
	return b.boundary
}

// ContentType returns the value for the Content-Type header
func (b *Body) ContentType() string {
	return formDataContentType(b.boundary)
}
