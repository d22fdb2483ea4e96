// Package apitest runs an in-memory fake of the caseadmin REST backend on
// httptest. It speaks the {data, detail, metadata} envelope, honours the
// soft/hard delete, restore, include-deleted and include-extra flags,
// paginates, checks bearer tokens when asked to, and counts requests so
// tests can assert that an operation stayed off the network.
package apitest
