// Package serve runs a local HTTP server exposing converted exports for
// inspection during sheet editing. It is a development aid, not a
// production data service.
package serve
