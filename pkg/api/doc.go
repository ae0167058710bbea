// Package api serves the mesh pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz      liveness probe, answers "ok"
//	GET  /v1/formats   supported output formats and their content types
//	GET  /v1/version   build version, commit and date
//	POST /v1/mesh      mesh the image in the request body
//
// POST /v1/mesh takes the raw image bytes (PNG, JPEG, GIF, BMP, TIFF, WebP
// or plain PBM/PGM) as its body and the mesh options as query parameters:
//
//	format       one of nmesh, neutral, stl, json, dot, svg
//	thickness    number of extruded layers
//	max_dist     smoothing radius (0 bridges nothing; omitted uses the default)
//	smooth       false skips smoothing
//	reduce       false skips redundant-edge reduction
//	volumes      false omits volume elements
//	any_channel  true treats any nonzero channel as foreground
//	invert       true meshes the background instead
//	detailed     true adds coordinates to DOT/SVG labels
//
// The response body is the rendered artifact. Errors are JSON objects with
// "code" and "error" fields; see [httputil.WriteError].
package api
