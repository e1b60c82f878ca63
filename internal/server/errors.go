package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tunedrop/internal/extract"
)

// User-facing messages per failure category. The original tool message is
// logged for operators but never shown verbatim to clients.
var kindMessages = map[extract.Kind]string{
	extract.KindAuthRequired:     "YouTube requiere verificación. Intenta con otro video o más tarde.",
	extract.KindUnavailable:      "El video no está disponible o es privado.",
	extract.KindRightsRestricted: "Este video está protegido con DRM y no puede descargarse.",
	extract.KindTranscodeMissing: "No se encontró el archivo MP3 tras la conversión.",
	extract.KindUnknown:          "Error inesperado al procesar el video.",
}

// statusForKind maps each failure category to its HTTP status.
func statusForKind(kind extract.Kind) int {
	switch kind {
	case extract.KindAuthRequired:
		return http.StatusServiceUnavailable
	case extract.KindUnavailable, extract.KindTranscodeMissing:
		return http.StatusNotFound
	case extract.KindRightsRestricted:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// renderExtractError writes the JSON error response for an extraction
// failure.
func renderExtractError(c *gin.Context, err error) {
	var exErr *extract.Error
	if !errors.As(err, &exErr) {
		log.Error().Err(err).Msg("extraction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": kindMessages[extract.KindUnknown]})
		return
	}

	log.Warn().
		Str("kind", exErr.Kind.String()).
		Str("detail", exErr.Detail).
		Msg("extraction failed")
	c.JSON(statusForKind(exErr.Kind), gin.H{"error": kindMessages[exErr.Kind]})
}
