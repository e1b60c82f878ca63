package extract

import (
	"fmt"
	"strings"
)

// Kind categorizes extraction failures so callers can map them to distinct
// outward signals.
type Kind int

const (
	// KindUnknown covers any failure that does not match a known category
	KindUnknown Kind = iota

	// KindAuthRequired means the remote service demanded interactive
	// verification (sign-in / bot-check)
	KindAuthRequired

	// KindUnavailable means the resource is removed, private or blocked
	KindUnavailable

	// KindRightsRestricted means DRM prevents extraction
	KindRightsRestricted

	// KindTranscodeMissing means the tool reported success but no output
	// file was found in the workspace
	KindTranscodeMissing
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindAuthRequired:
		return "auth_required"
	case KindUnavailable:
		return "unavailable"
	case KindRightsRestricted:
		return "rights_restricted"
	case KindTranscodeMissing:
		return "transcode_missing"
	default:
		return "unknown"
	}
}

// Error is a categorized extraction failure. Detail preserves the original
// tool message for diagnostics.
type Error struct {
	Kind   Kind
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("extraction failed (%s)", e.Kind)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Detail)
}

// classify maps a raw tool failure to a categorized Error, following the
// signal strings yt-dlp emits for each condition.
func classify(err error) *Error {
	detail := err.Error()
	lower := strings.ToLower(detail)

	switch {
	case strings.Contains(detail, "Sign in") || strings.Contains(lower, "bot"):
		return &Error{Kind: KindAuthRequired, Detail: detail}
	case strings.Contains(detail, "DRM") || strings.Contains(lower, "drm protected"):
		return &Error{Kind: KindRightsRestricted, Detail: detail}
	case strings.Contains(lower, "unavailable") || strings.Contains(lower, "private"):
		return &Error{Kind: KindUnavailable, Detail: detail}
	default:
		return &Error{Kind: KindUnknown, Detail: detail}
	}
}
