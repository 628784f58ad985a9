// Package http implements the REST transport layer of the student portal.
//
// It exposes route wiring, request handlers, and middleware used by the
// API. Cross-cutting concerns such as bearer authentication, request
// tracing, access logging, CORS and response compression are handled in
// this package before requests are delegated to the service layer.
package http
