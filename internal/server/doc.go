// Package server implements the HTTP service that compares two remote
// images per request and answers with the rendered highlight overlay.
//
// # Endpoints
//
//	GET /?i1=<url>&i2=<url>  download both images, compare them, respond
//	                         with the overlay PNG; the region count is in
//	                         the X-Rectangles-Found header
//	GET /health              liveness probe, responds {"status":"ok"}
//
// # Request Lifecycle
//
// Every comparison request runs in isolation:
//
//  1. Validate both URLs (absolute http/https with a host)
//  2. Create a request-scoped temporary directory (shotdiff_*)
//  3. Download both images into it, subject to the fetch package's
//     content-type and size limits
//  4. Run the comparison pipeline with artifacts written into the same
//     temporary directory
//  5. Stream the overlay PNG back and remove the directory
//
// The directory is removed on failure paths too, so no request leaves
// files behind. File names carry a per-request session id, which keeps
// paths unique; concurrent requests share no state at all.
//
// # Error Mapping
//
// Failures caused by the request map to 400 with a JSON body of the form
// {"error": "..."}: missing or invalid URLs, download failures (bad
// status, wrong content type, oversized body), undecodable images, and
// mismatched image dimensions. Everything else (temp-dir creation,
// artifact writes, overlay readback) is a 500 with a generic message;
// details go to the log, not the client.
//
// # Usage
//
//	srv, err := server.New(cfg, server.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	return srv.ListenAndServe(ctx)
//
// ListenAndServe blocks until the listener fails or ctx is cancelled, and
// shuts down gracefully in the latter case.
package server
