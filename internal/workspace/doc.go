// Package workspace manages per-request temporary directories used as
// scratch space for downloaded and transcoded media files.
package workspace
