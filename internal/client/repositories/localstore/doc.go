// Package localstore persists small values (remembered sessions,
// preferences) in the local SQLite database.
//
// Expiry is stored as Unix seconds in local_storage.expires_at and checked
// on read; Purge removes expired rows in bulk.
package localstore
