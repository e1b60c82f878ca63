// Package server wires the HTTP surface: routes, CORS, session middleware
// and the info/download request handlers.
package server
