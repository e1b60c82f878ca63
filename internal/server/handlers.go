package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tunedrop/internal/sanitize"
	"tunedrop/internal/stream"
)

type urlRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mensaje": "El backend está funcionando correctamente."})
}

// handleInfo resolves metadata for a URL without materializing any file,
// so no workspace is created here.
func (s *Server) handleInfo(c *gin.Context) {
	url, ok := bindURL(c)
	if !ok {
		return
	}

	info, err := s.extractor.FetchInfo(c.Request.Context(), url)
	if err != nil {
		renderExtractError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":     info.Title,
		"thumbnail": info.Thumbnail,
		"duration":  info.Duration,
	})
}

// handleDownload runs the full pipeline: workspace, extraction, sanitized
// filename, streamed response. On every failure path the workspace is
// destroyed before the error response is written. On the success path
// ownership of the workspace transfers to the stream session, which tears
// it down when the transfer ends however it ends.
func (s *Server) handleDownload(c *gin.Context) {
	url, ok := bindURL(c)
	if !ok {
		return
	}

	ws, err := s.workspaces.Create()
	if err != nil {
		log.Error().Err(err).Msg("workspace creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo preparar el espacio temporal."})
		return
	}

	result, err := s.extractor.FetchAudio(c.Request.Context(), url, ws)
	if err != nil {
		ws.Destroy()
		renderExtractError(c, err)
		return
	}

	session, err := stream.NewSession(result.Path, ws)
	if err != nil {
		ws.Destroy()
		log.Error().Err(err).Msg("failed to open transcoded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error inesperado al procesar el video."})
		return
	}

	filename := sanitize.Clean(result.Title) + ".mp3"
	if err := stream.Send(c.Writer, session, filename); err != nil {
		// Headers are committed by now; the teardown already ran.
		log.Debug().Err(err).Str("url", url).Msg("stream ended early")
	}
}

// bindURL extracts a non-empty url field from the JSON body, answering 400
// itself when it is missing.
func bindURL(c *gin.Context) (string, bool) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL no proporcionada"})
		return "", false
	}
	return strings.TrimSpace(req.URL), true
}
