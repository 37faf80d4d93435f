package formdata

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/gobeaver/filekit/filevalidator"
)

// Global instance
var (
	defaultEncoder *Encoder
	defaultOnce    sync.Once
	defaultErr     error
)

// maxBoundaryLength is the RFC 2046 limit on boundary length
const maxBoundaryLength = 70

// Encoder holds validated settings and hands out writers configured with them
type Encoder struct {
	cfg       Config
	validator filevalidator.Validator
	logger    *slog.Logger
}

// Builder provides a way to create Encoder instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Encoder instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Encoder instance using the builder's prefix
func (b *Builder) New() (*Encoder, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global encoder instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultEncoder, defaultErr = New(cfg)
	})

	return defaultErr
}

// New creates a new encoder with given config
func New(cfg *Config) (*Encoder, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Encoder{
		cfg:       *cfg,
		validator: createValidator(cfg),
	}, nil
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg.BufferSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, cfg.BufferSize)
	}

	if len(cfg.Boundary) > maxBoundaryLength {
		return fmt.Errorf("boundary longer than %d characters", maxBoundaryLength)
	}

	if cfg.Checksum != "" {
		if _, err := NewHasher(ChecksumAlgorithm(cfg.Checksum)); err != nil {
			return err
		}
	}

	if cfg.MaxFileSize < 0 {
		return errors.New("max file size must not be negative")
	}

	return nil
}

// createValidator creates a file validator from config. It returns nil when
// no validation setting is present.
func createValidator(cfg *Config) filevalidator.Validator {
	if cfg.MaxFileSize == 0 &&
		cfg.AllowedMimeTypes == "" &&
		cfg.AllowedExtensions == "" &&
		cfg.BlockedExtensions == "" {
		return nil
	}

	// Start with default constraints
	constraints := filevalidator.DefaultConstraints()

	if cfg.MaxFileSize > 0 {
		constraints.MaxFileSize = cfg.MaxFileSize
	}

	if cfg.AllowedMimeTypes != "" {
		constraints.AcceptedTypes = splitList(cfg.AllowedMimeTypes)
	}

	if cfg.AllowedExtensions != "" {
		constraints.AllowedExts = splitList(cfg.AllowedExtensions)
	}

	if cfg.BlockedExtensions != "" {
		// Append to existing blocked extensions
		constraints.BlockedExts = append(constraints.BlockedExts, splitList(cfg.BlockedExtensions)...)
	}

	return filevalidator.New(constraints)
}

func splitList(s string) []string {
	items := strings.Split(s, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items
}

// Config returns a copy of the encoder's configuration
func (e *Encoder) Config() Config {
	return e.cfg
}

// Validator returns the configured file validator, or nil
func (e *Encoder) Validator() filevalidator.Validator {
	return e.validator
}

// WithLogger returns a copy of the encoder whose writers log to logger
func (e *Encoder) WithLogger(logger *slog.Logger) *Encoder {
	c := *e
	c.logger = logger
	return &c
}

// Options returns the writer options derived from the configuration
func (e *Encoder) Options() []WriterOption {
	var options []WriterOption

	if e.cfg.Boundary != "" {
		options = append(options, WithBoundary(e.cfg.Boundary))
	}

	if e.cfg.BufferSize > 0 {
		options = append(options, WithBufferSize(e.cfg.BufferSize))
	}

	if e.cfg.Checksum != "" {
		options = append(options, WithChecksum(ChecksumAlgorithm(e.cfg.Checksum)))
	}

	if e.logger != nil {
		options = append(options, WithLogger(e.logger))
	}

	return options
}

// FileOptions returns the file field options derived from the configuration
func (e *Encoder) FileOptions() []FileOption {
	var options []FileOption

	if !e.cfg.DetectContentType {
		options = append(options, WithoutDetection())
	}

	if e.cfg.DefaultFileContentType != "" {
		options = append(options, WithDefaultContentType(e.cfg.DefaultFileContentType))
	}

	if e.validator != nil {
		options = append(options, WithValidator(e.validator))
	}

	return options
}

// Pipe streams a body built with the encoder's settings. Options given here
// take precedence.
func (e *Encoder) Pipe(build BuildFunc, opts ...WriterOption) *Body {
	return Pipe(build, mergeOptions(e.Options(), opts)...)
}

// Open creates a writer on sink with the encoder's settings. Options given
// here take precedence.
func Open[W io.Writer](e *Encoder, sink W, opts ...WriterOption) *Writer[W] {
	return NewWriter(sink, mergeOptions(e.Options(), opts)...)
}

func mergeOptions(defaults, overrides []WriterOption) []WriterOption {
	all := make([]WriterOption, 0, len(defaults)+len(overrides))
	all = append(all, defaults...)
	return append(all, overrides...)
}

// Default returns the global instance, initializing it from the environment
// if needed
func Default() (*Encoder, error) {
	if defaultEncoder == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultEncoder, nil
}

// NewFromEnv creates instance from environment variables (convenience constructor)
func NewFromEnv() (*Encoder, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultEncoder = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
