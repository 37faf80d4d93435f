package formdata

import (
	"hash"
	"io"
)

// ProgressFunc is a callback reporting the total number of bytes delivered
// to the sink so far
type ProgressFunc func(written int64)

// sinkWriter sits between the buffer and the caller's sink. It counts and
// digests exactly the bytes the sink accepted.
type sinkWriter struct {
	sink     io.Writer
	hasher   hash.Hash
	progress ProgressFunc
	written  int64
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	n, err := s.sink.Write(p)
	if n > 0 {
		s.written += int64(n)
		if s.hasher != nil {
			// hash.Hash never returns an error
			_, _ = s.hasher.Write(p[:n])
		}
		if s.progress != nil {
			s.progress(s.written)
		}
	}
	return n, err
}
