// Package storage provides the durable key-value slot behind the session.
//
// The client persists exactly one value (the bearer token under the key
// "token"), but the engines expose a small generic KV so the session layer
// does not depend on any one backend:
//
//   - BadgerEngine: embedded Badger v3 database on local disk
//   - MemoryEngine: process-local map, used for --storage-engine=memory and tests
//   - EncryptedKV: wraps another KV and seals every value at rest
//
// Open builds the configured engine, optionally wrapped in EncryptedKV.
package storage
