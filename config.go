package formdata

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Fixed boundary for every writer. Empty generates one per writer.
	Boundary string `env:"FORMDATA_BOUNDARY"`

	// Size of the write buffer in front of the sink
	BufferSize int `env:"FORMDATA_BUFFER_SIZE,default:4096"`

	// Digest of every produced body (md5, sha1, sha256, sha512, crc32, xxhash, blake3)
	Checksum string `env:"FORMDATA_CHECKSUM"`

	// File field content types
	DetectContentType      bool   `env:"FORMDATA_DETECT_CONTENT_TYPE,default:true"`
	DefaultFileContentType string `env:"FORMDATA_DEFAULT_FILE_CONTENT_TYPE,default:application/octet-stream"`

	// File field validation. Validation is off unless one of these is set.
	MaxFileSize       int64  `env:"FORMDATA_MAX_FILE_SIZE,default:0"`
	AllowedMimeTypes  string `env:"FORMDATA_ALLOWED_MIME_TYPES"` // comma-separated
	AllowedExtensions string `env:"FORMDATA_ALLOWED_EXTENSIONS"` // comma-separated
	BlockedExtensions string `env:"FORMDATA_BLOCKED_EXTENSIONS"` // comma-separated
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
