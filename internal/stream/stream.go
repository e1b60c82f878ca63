// Package stream serves a downloaded file as a chunked HTTP response body
// and guarantees that the backing workspace is torn down exactly once, no
// matter how the transfer ends.
package stream

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"

	"tunedrop/internal/workspace"
)

// Streaming constants
const (
	// ChunkSize bounds peak memory per transfer regardless of file size
	ChunkSize = 8 * 1024

	// ContentType is the MIME type of every streamed body
	ContentType = "audio/mpeg"
)

// Session binds one open file handle and one workspace to a single HTTP
// response. Close is the only terminal action and is safe to call more
// than once; the first call closes the file and destroys the workspace.
type Session struct {
	file *os.File
	ws   *workspace.Workspace
	size int64
	once sync.Once
}

// NewSession opens the file and captures its exact size for the
// Content-Length header. Ownership of the workspace transfers to the
// session: the caller must not destroy it afterwards.
func NewSession(path string, ws *workspace.Workspace) (*Session, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat media file: %w", err)
	}

	return &Session{file: file, ws: ws, size: info.Size()}, nil
}

// Size returns the byte size of the file at session start.
func (s *Session) Size() int64 {
	return s.size
}

// Close releases the file handle and destroys the workspace. Runs at most
// once; later calls are no-ops.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.file.Close()
		s.ws.Destroy()
	})
	return nil
}

// Send writes the session's file to the response in fixed-size chunks.
// Teardown runs in a deferred block, so it fires whether the file is
// exhausted normally, the client disconnects mid-stream, or a read fails.
// A non-nil return only reports why the transfer stopped early; by then the
// response status is already committed.
func Send(w http.ResponseWriter, session *Session, filename string) error {
	defer session.Close()

	header := w.Header()
	header.Set("Content-Type", ContentType)
	header.Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	header.Set("Content-Length", strconv.FormatInt(session.size, 10))
	header.Set("Access-Control-Expose-Headers", "Content-Disposition")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)

	buf := make([]byte, ChunkSize)
	for {
		n, readErr := session.file.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("client aborted transfer: %w", writeErr)
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read failed mid-stream: %w", readErr)
		}
	}
}
