package formdata

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPipeMatchesWriter(t *testing.T) {
	build := func(w *Writer[*io.PipeWriter]) error {
		if err := w.WriteTextField("user", "alice"); err != nil {
			return err
		}
		return w.WriteField("blob", bytes.Repeat([]byte{0xAB}, 100000),
			WithFilename("blob.bin"),
			WithContentType("application/octet-stream"),
		)
	}

	body := Pipe(build, WithBoundary("pipe-boundary"))
	defer body.Close()

	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	direct := NewWriterWithBoundary(&bytes.Buffer{}, "pipe-boundary")
	if err := direct.WriteTextField("user", "alice"); err != nil {
		t.Fatal(err)
	}
	if err := direct.WriteField("blob", bytes.Repeat([]byte{0xAB}, 100000),
		WithFilename("blob.bin"),
		WithContentType("application/octet-stream"),
	); err != nil {
		t.Fatal(err)
	}
	want, err := direct.Finish()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("piped body (%d bytes) differs from direct body (%d bytes)", len(got), want.Len())
	}
	if body.Boundary() != "pipe-boundary" {
		t.Errorf("Boundary() = %q, want %q", body.Boundary(), "pipe-boundary")
	}
	if body.ContentType() != "multipart/form-data; boundary=pipe-boundary" {
		t.Errorf("ContentType() = %q", body.ContentType())
	}
}

func TestPipeBuildError(t *testing.T) {
	errBuild := errors.New("no more fields")
	body := Pipe(func(w *Writer[*io.PipeWriter]) error {
		if err := w.WriteTextField("a", "1"); err != nil {
			return err
		}
		return errBuild
	})
	defer body.Close()

	_, err := io.ReadAll(body)
	if !errors.Is(err, errBuild) {
		t.Errorf("ReadAll() error = %v, want %v", err, errBuild)
	}
}

func TestPipeReaderClosedEarly(t *testing.T) {
	done := make(chan error, 1)
	body := Pipe(func(w *Writer[*io.PipeWriter]) error {
		var err error
		for i := 0; i < 1000 && err == nil; i++ {
			err = w.WriteField("chunk", bytes.Repeat([]byte("x"), 4096))
		}
		done <- err
		return err
	})

	buf := make([]byte, 10)
	if _, err := io.ReadFull(body, buf); err != nil {
		t.Fatalf("ReadFull() error = %v", err)
	}
	body.Close()

	err := <-done
	if !IsSinkFailure(err) || !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("producer error = %v, want sink failure wrapping io.ErrClosedPipe", err)
	}
}

func TestPipeAsRequestBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		f, fh, err := r.FormFile("upload")
		if err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		content, _ := io.ReadAll(f)
		_, _ = io.WriteString(rw, r.FormValue("user")+"|"+fh.Filename+"|"+string(content))
	}))
	defer srv.Close()

	body := Pipe(func(w *Writer[*io.PipeWriter]) error {
		if err := w.WriteTextField("user", "alice"); err != nil {
			return err
		}
		return w.WriteField("upload", []byte("file content"), WithFilename("note.txt"), WithContentType("text/plain"))
	})
	defer body.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL, body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", body.ContentType())

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	got, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, got)
	}
	if want := "alice|note.txt|file content"; strings.TrimSpace(string(got)) != want {
		t.Errorf("server saw %q, want %q", got, want)
	}
}
