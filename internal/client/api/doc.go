// Package api is the HTTP wrapper every action goes through.
//
// Fetch turns an endpoint template plus an Options bag into one request
// and normalizes whatever comes back into an Envelope. A non-2xx status is
// not an error: the body is folded into Envelope.Detail.Error so callers
// check one shape. The returned error is reserved for transport, encoding
// and templating failures.
package api
