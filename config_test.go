package formdata

import (
	"os"
	"testing"
)

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    Config
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			want: Config{
				BufferSize:             4096,
				DetectContentType:      true,
				DefaultFileContentType: "application/octet-stream",
			},
		},
		{
			name: "writer configuration",
			envVars: map[string]string{
				"BEAVER_FORMDATA_BOUNDARY":    "fixed-boundary",
				"BEAVER_FORMDATA_BUFFER_SIZE": "65536",
				"BEAVER_FORMDATA_CHECKSUM":    "sha256",
			},
			want: Config{
				Boundary:               "fixed-boundary",
				BufferSize:             65536,
				Checksum:               "sha256",
				DetectContentType:      true,
				DefaultFileContentType: "application/octet-stream",
			},
		},
		{
			name: "file field configuration",
			envVars: map[string]string{
				"BEAVER_FORMDATA_DETECT_CONTENT_TYPE":       "false",
				"BEAVER_FORMDATA_DEFAULT_FILE_CONTENT_TYPE": "application/x-raw",
			},
			want: Config{
				BufferSize:             4096,
				DetectContentType:      false,
				DefaultFileContentType: "application/x-raw",
			},
		},
		{
			name: "file validation configuration",
			envVars: map[string]string{
				"BEAVER_FORMDATA_MAX_FILE_SIZE":      "5242880",
				"BEAVER_FORMDATA_ALLOWED_MIME_TYPES": "image/jpeg,image/png",
				"BEAVER_FORMDATA_ALLOWED_EXTENSIONS": ".jpg,.png",
				"BEAVER_FORMDATA_BLOCKED_EXTENSIONS": ".exe,.bat",
			},
			want: Config{
				BufferSize:             4096,
				DetectContentType:      true,
				DefaultFileContentType: "application/octet-stream",
				MaxFileSize:            5242880,
				AllowedMimeTypes:       "image/jpeg,image/png",
				AllowedExtensions:      ".jpg,.png",
				BlockedExtensions:      ".exe,.bat",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				os.Setenv(k, v)
				t.Cleanup(func() { os.Unsetenv(k) })
			}

			cfg, err := GetConfig()
			if err != nil {
				t.Fatalf("GetConfig() error = %v", err)
			}

			if cfg.Boundary != tt.want.Boundary {
				t.Errorf("Boundary = %v, want %v", cfg.Boundary, tt.want.Boundary)
			}
			if cfg.BufferSize != tt.want.BufferSize {
				t.Errorf("BufferSize = %v, want %v", cfg.BufferSize, tt.want.BufferSize)
			}
			if cfg.Checksum != tt.want.Checksum {
				t.Errorf("Checksum = %v, want %v", cfg.Checksum, tt.want.Checksum)
			}
			if cfg.DetectContentType != tt.want.DetectContentType {
				t.Errorf("DetectContentType = %v, want %v", cfg.DetectContentType, tt.want.DetectContentType)
			}
			if cfg.DefaultFileContentType != tt.want.DefaultFileContentType {
				t.Errorf("DefaultFileContentType = %v, want %v", cfg.DefaultFileContentType, tt.want.DefaultFileContentType)
			}
			if cfg.MaxFileSize != tt.want.MaxFileSize {
				t.Errorf("MaxFileSize = %v, want %v", cfg.MaxFileSize, tt.want.MaxFileSize)
			}
			if cfg.AllowedMimeTypes != tt.want.AllowedMimeTypes {
				t.Errorf("AllowedMimeTypes = %v, want %v", cfg.AllowedMimeTypes, tt.want.AllowedMimeTypes)
			}
			if cfg.AllowedExtensions != tt.want.AllowedExtensions {
				t.Errorf("AllowedExtensions = %v, want %v", cfg.AllowedExtensions, tt.want.AllowedExtensions)
			}
			if cfg.BlockedExtensions != tt.want.BlockedExtensions {
				t.Errorf("BlockedExtensions = %v, want %v", cfg.BlockedExtensions, tt.want.BlockedExtensions)
			}
		})
	}
}
