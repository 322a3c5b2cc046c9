// Package models defines the core domain records for Powerbill.
//
// # Models
//
//   - User: a registered account with consumer/meter numbers
//   - Bill: a billing period, either the live "current bill" or a history entry
//   - Service: a registered sub-service a user can pay independently
//   - Payment: one entry in the append-only payment log
//   - Session: the in-memory authentication state
//
// # Design Principles
//
// 1. **Value records**: everything is a JSON-serializable snapshot; the storage
// layer owns the canonical copy and in-memory values carry no back-reference.
//
// 2. **Stable JSON shapes**: field tags match the persisted key-value layout
// exactly (camelCase), so blobs written by one release read back unchanged.
//
// 3. **Avoid circular references**: relationships use ID strings, never
// pointers between records.
package models
