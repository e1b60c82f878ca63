// Package extract adapts the external yt-dlp extraction and transcoding
// tool behind a small typed API with a categorized failure taxonomy.
package extract
