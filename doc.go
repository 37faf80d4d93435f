// Package formdata encodes form fields as a multipart/form-data body
// (RFC 7578) and streams it to any [io.Writer] without holding the payload
// in memory.
//
// A [Writer] owns its sink from construction until [Writer.Finish], which
// writes the closing delimiter and hands the sink back with its concrete
// type. Fields appear on the wire in the order they are written.
//
// # Basic Usage
//
//	var buf bytes.Buffer
//	w := formdata.NewWriter(&buf)
//
//	_ = w.WriteTextField("title", "holiday")
//	_ = w.WriteField("photo", jpegBytes,
//	    formdata.WithFilename("beach.jpg"),
//	    formdata.WithContentType("image/jpeg"),
//	    formdata.WithHeader("X-Camera", "A7"),
//	)
//
//	body, err := w.Finish()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	req, _ := http.NewRequest("POST", url, body)
//	req.Header.Set("Content-Type", w.FormDataContentType())
//
// # Wire Format
//
// Each part is written as
//
//	--<boundary>\r\n
//	Content-Disposition: form-data; name="<name>"[; filename="<filename>"]\r\n
//	[Content-Type: <type>\r\n]
//	[<key>: <value>\r\n ...]
//	\r\n
//	<value>\r\n
//
// and the body ends with "--<boundary>--" with no trailing CRLF. Names,
// filenames and header values are not escaped: they must already be clean
// ASCII tokens without '"' or line breaks.
//
// Generated boundaries are 24 dashes followed by 16 random characters from
// [0-9A-Za-z], the same shape curl uses.
//
// # Streaming Request Bodies
//
// [Pipe] runs a build function in its own goroutine and returns a [Body]
// that can be passed straight to an HTTP client:
//
//	body := formdata.Pipe(func(w *formdata.Writer[*io.PipeWriter]) error {
//	    if err := w.WriteTextField("user", "alice"); err != nil {
//	        return err
//	    }
//	    return w.WriteFile(ctx, fs, "avatar", "avatars/alice.png")
//	})
//	defer body.Close()
//	req, _ := http.NewRequestWithContext(ctx, "POST", url, body)
//	req.Header.Set("Content-Type", body.ContentType())
//
// # File Fields
//
// [Writer.WriteFile] streams a file from any [FileSource], which every
// filekit FileSystem satisfies. The content type is guessed from the file
// name and magic bytes unless given, and a filevalidator.Validator can reject
// the file before anything is written.
//
// # Errors
//
// Sink failures are returned as [*WriteError] and match [ErrSinkWrite].
// They are sticky: the writer reports the same error from then on and the
// partial body must be discarded. Using a writer after Finish returns
// [ErrFinished].
//
// # Configuration
//
// An [Encoder] carries settings loaded from the environment
// (BEAVER_FORMDATA_BUFFER_SIZE, BEAVER_FORMDATA_CHECKSUM, ...):
//
//	enc, err := formdata.NewFromEnv()
//	w := formdata.Open(enc, conn)
package formdata
