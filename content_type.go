package formdata

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gobeaver/filekit/filevalidator"
)

// Common MIME types
const (
	MIMETypeTextPlain       = "text/plain"
	MIMETypeApplicationJSON = "application/json"
	MIMETypeOctetStream     = "application/octet-stream"
)

// sniffLen is how much of a file value is inspected when guessing its type
const sniffLen = 512

// Common file extensions to MIME types mapping
var extensionToMIME = map[string]string{
	".txt":  MIMETypeTextPlain,
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".csv":  "text/csv",
	".md":   "text/markdown",
	".js":   "text/javascript",
	".json": MIMETypeApplicationJSON,
	".xml":  "application/xml",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".tar":  "application/x-tar",
}

// GuessContentType picks a content type for a file field from its name and,
// failing that, from the leading bytes of its value. Extensions known to the
// mime package win over sniffing. It returns "" when neither gives an answer.
func GuessContentType(filePath string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if contentType, ok := extensionToMIME[ext]; ok {
		return contentType
	}

	if ext != "" {
		// Drop parameters such as charset; part headers carry the bare type.
		if contentType := mime.TypeByExtension(ext); contentType != "" {
			if idx := strings.Index(contentType, ";"); idx != -1 {
				contentType = contentType[:idx]
			}
			return strings.TrimSpace(contentType)
		}
	}

	if len(data) > 0 {
		return filevalidator.DetectMIMEFromBytes(data)
	}

	return ""
}
