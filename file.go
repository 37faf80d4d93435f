package formdata

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/gobeaver/filekit"
	"github.com/gobeaver/filekit/filevalidator"
)

// FileSource provides the read access needed to stream a file into a part.
// Every filekit.FileSystem satisfies it.
type FileSource interface {
	// Read returns a stream for reading file content.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Stat returns file metadata.
	Stat(ctx context.Context, path string) (*filekit.FileInfo, error)
}

// FileOption represents an option for file fields
type FileOption func(*FileOptions)

// FileOptions contains the settings for a file field
type FileOptions struct {
	// Filename overrides the filename parameter, which defaults to the
	// last element of the path
	Filename string

	// ContentType overrides the detected content type
	ContentType string

	// DefaultContentType is used when no content type can be determined
	DefaultContentType string

	// Headers contains additional part headers, in wire order
	Headers []Header

	// Validator is run against the file before anything is written
	Validator filevalidator.Validator

	// DisableDetection turns off guessing the content type from the name
	// and content
	DisableDetection bool
}

// WithFileName sets the filename parameter of the part
func WithFileName(filename string) FileOption {
	return func(o *FileOptions) {
		o.Filename = filename
	}
}

// WithFileContentType sets the content type of the part
func WithFileContentType(contentType string) FileOption {
	return func(o *FileOptions) {
		o.ContentType = contentType
	}
}

// WithDefaultContentType sets the fallback content type
func WithDefaultContentType(contentType string) FileOption {
	return func(o *FileOptions) {
		o.DefaultContentType = contentType
	}
}

// WithFileHeader appends an extra header to the part
func WithFileHeader(key, value string) FileOption {
	return func(o *FileOptions) {
		o.Headers = append(o.Headers, Header{Key: key, Value: value})
	}
}

// WithValidator sets a file validator to run before the part is written
func WithValidator(validator filevalidator.Validator) FileOption {
	return func(o *FileOptions) {
		o.Validator = validator
	}
}

// WithoutDetection disables content type guessing
func WithoutDetection() FileOption {
	return func(o *FileOptions) {
		o.DisableDetection = true
	}
}

// WriteFile appends one file part named name whose value is streamed from
// filePath in src.
//
// The content type is, in order: WithFileContentType, the type reported by
// src.Stat, a guess from the file name and its first 512 bytes, and finally
// the default (application/octet-stream). When a validator is set the file
// is read once for validation and once more for encoding; a rejected file
// writes nothing and returns an error matching ErrValidation.
func (w *Writer[W]) WriteFile(ctx context.Context, src FileSource, name, filePath string, opts ...FileOption) error {
	o := FileOptions{DefaultContentType: MIMETypeOctetStream}
	for _, opt := range opts {
		opt(&o)
	}

	if err := w.usable(); err != nil {
		return fmt.Errorf("write field %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := src.Stat(ctx, filePath)
	if err != nil {
		return &SourceError{Field: name, Path: filePath, Err: err}
	}
	if info == nil {
		return &SourceError{Field: name, Path: filePath, Err: filekit.ErrNotExist}
	}
	if info.IsDir {
		return &SourceError{Field: name, Path: filePath, Err: filekit.ErrIsDir}
	}

	filename := o.Filename
	if filename == "" {
		filename = path.Base(filePath)
	}

	if o.Validator != nil {
		if err := validateFile(ctx, src, o.Validator, filePath, filename, info.Size); err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrValidation, name, err)
		}
	}

	rc, err := src.Read(ctx, filePath)
	if err != nil {
		return &SourceError{Field: name, Path: filePath, Err: err}
	}
	defer rc.Close()

	var r io.Reader = rc
	contentType := o.ContentType
	if contentType == "" {
		contentType = info.ContentType
	}
	if contentType == "" && !o.DisableDetection {
		br := bufio.NewReaderSize(rc, sniffLen)
		// A short or failing read shows up again when the value is copied.
		head, _ := br.Peek(sniffLen)
		contentType = GuessContentType(filename, head)
		r = br
	}
	if contentType == "" {
		contentType = o.DefaultContentType
	}

	fieldOpts := []FieldOption{WithFilename(filename), WithHeaders(o.Headers...)}
	if contentType != "" {
		fieldOpts = append(fieldOpts, WithContentType(contentType))
	}
	err = w.WriteFieldFrom(name, r, fieldOpts...)
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		srcErr.Path = filePath
	}
	return err
}

func validateFile(ctx context.Context, src FileSource, v filevalidator.Validator, filePath, filename string, size int64) error {
	rc, err := src.Read(ctx, filePath)
	if err != nil {
		return err
	}
	defer rc.Close()
	return v.ValidateReader(rc, filename, size)
}
