// Package kv provides the key-value surfaces the trip store persists to.
//
// A Surface is the Go rendition of browser-local storage: string keys,
// string values, synchronous Get/Set/Remove. Implementations:
//
//   - Memory: process memory, with an optional byte quota.
//   - File: one file per key inside a directory, replaced atomically.
//   - SQLite: a single kv_items table managed by goose migrations.
package kv

import "errors"

// Surface is the only capability the trip store needs from storage.
type Surface interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// ErrQuotaExceeded is returned by Set when the write would push the surface
// past its configured size limit.
var ErrQuotaExceeded = errors.New("kv: quota exceeded")

// ErrInvalidKey is returned for keys a surface cannot address.
var ErrInvalidKey = errors.New("kv: invalid key")
