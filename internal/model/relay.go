// Package model defines shared types for the relay.
package model

import (
	"context"
	"net/url"
)

// RelayRequest is an inbound data-service call to be forwarded upstream.
type RelayRequest struct {
	Ctx context.Context
	// Segments are the decoded path segments following the relay prefix, in order.
	Segments []string
	// Params are the query parameters, forwarded as opaque strings.
	Params url.Values
}

// RelayResponse holds an upstream body fully read into memory.
type RelayResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// File is the content of a local file read for a client.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}
