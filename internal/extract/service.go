package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lrstanley/go-ytdlp"

	"tunedrop/internal/workspace"
)

// Audio output settings
const (
	AudioExtension = ".mp3"
	AudioCodec     = "mp3"
	FormatSelector = "bestaudio/best"

	// extPlaceholder is expanded by the tool to the real extension
	extPlaceholder = ".%(ext)s"
)

// Network identity defaults. A browser-like profile avoids the most common
// bot-detection rejections; cookies and proxy are passed through opaquely.
const (
	DefaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	DefaultAcceptLanguage = "es-ES,es;q=0.9,en;q=0.8"
	PlayerClients         = "youtube:player_client=web,ios,android"
)

// Default values for tool options
const (
	DefaultBitrate          = 192
	DefaultSocketTimeoutSec = 60
	DefaultRetries          = 3
)

// Options configures the external extraction tool. Zero values fall back to
// the defaults above.
type Options struct {
	Bitrate          int    // audio bitrate in kbps
	SocketTimeoutSec int    // per-connection timeout
	Retries          int    // download retry attempts
	CookiesFile      string // optional cookies export, passed through
	ProxyURL         string // optional proxy, passed through
	UserAgent        string
	AcceptLanguage   string
}

// withDefaults fills unset option fields.
func (o Options) withDefaults() Options {
	if o.Bitrate <= 0 {
		o.Bitrate = DefaultBitrate
	}
	if o.SocketTimeoutSec <= 0 {
		o.SocketTimeoutSec = DefaultSocketTimeoutSec
	}
	if o.Retries <= 0 {
		o.Retries = DefaultRetries
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.AcceptLanguage == "" {
		o.AcceptLanguage = DefaultAcceptLanguage
	}
	return o
}

// Info is the metadata the tool reports for a media URL.
type Info struct {
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
}

// Result is a completed download: metadata plus the transcoded file inside
// the request's workspace.
type Result struct {
	Info
	Path string
}

// Service is a thin adapter over the external extraction/transcode tool.
type Service struct {
	opts Options
}

// NewService creates an extraction service with the given options.
func NewService(opts Options) *Service {
	return &Service{opts: opts.withDefaults()}
}

// base builds the declarative option set shared by all invocations.
func (s *Service) base() *ytdlp.Command {
	cmd := ytdlp.New().
		NoPlaylist().
		Quiet().
		NoWarnings().
		SocketTimeout(float64(s.opts.SocketTimeoutSec)).
		Retries(strconv.Itoa(s.opts.Retries)).
		FragmentRetries(strconv.Itoa(s.opts.Retries)).
		UserAgent(s.opts.UserAgent).
		AddHeaders("Accept-Language:" + s.opts.AcceptLanguage).
		ExtractorArgs(PlayerClients)

	if s.opts.CookiesFile != "" {
		cmd = cmd.Cookies(s.opts.CookiesFile)
	}
	if s.opts.ProxyURL != "" {
		cmd = cmd.Proxy(s.opts.ProxyURL)
	}
	return cmd
}

// FetchInfo resolves a URL into metadata without materializing any file.
func (s *Service) FetchInfo(ctx context.Context, url string) (*Info, error) {
	res, err := s.base().DumpJSON().Run(ctx, url)
	if err != nil {
		return nil, classify(err)
	}

	info, err := parseInfo([]byte(res.Stdout))
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Detail: err.Error()}
	}
	return info, nil
}

// FetchAudio downloads and transcodes the URL into exactly one audio file
// inside the given workspace. Metadata is resolved first, so the returned
// Result carries the title alongside the file path and extraction always
// completes fully before anything is streamed.
func (s *Service) FetchAudio(ctx context.Context, url string, ws *workspace.Workspace) (*Result, error) {
	info, err := s.FetchInfo(ctx, url)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	template := ws.Join(token + extPlaceholder)

	dl := s.base().
		Format(FormatSelector).
		ExtractAudio().
		AudioFormat(AudioCodec).
		AudioQuality(fmt.Sprintf("%dK", s.opts.Bitrate)).
		Output(template)

	if _, err := dl.Run(ctx, url); err != nil {
		return nil, classify(err)
	}

	path := ws.Join(token + AudioExtension)
	if _, err := os.Stat(path); err != nil {
		// The tool sometimes names the output differently than the
		// template suggests; scan the workspace once before giving up.
		found, ok := findByExtension(ws.Root, AudioExtension)
		if !ok {
			return nil, &Error{
				Kind:   KindTranscodeMissing,
				Detail: fmt.Sprintf("no %s file in workspace after transcode", AudioExtension),
			}
		}
		path = found
	}

	return &Result{Info: *info, Path: path}, nil
}

// parseInfo decodes the tool's JSON metadata dump.
func parseInfo(raw []byte) (*Info, error) {
	var info Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("failed to parse tool metadata: %w", err)
	}
	return &info, nil
}

// findByExtension does a bounded single-pass scan of dir for the first
// regular file with the given extension.
func findByExtension(dir, ext string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}
