// Package server implements the note taker HTTP service.
//
// Owns:
//   - the Store implementations (JSON file, SQLite row) for the notes document
//   - NoteService (list/create/delete as whole-document read-modify-write)
//   - HTTP routing, handlers, and the static pages
//
// Invariants:
//   - the backing document is always a single JSON array of note objects
//   - note ids are generated here; a client "id" field is overwritten
//   - mutations are serialized by NoteService, so concurrent requests in one
//     process never lose an update
//   - JSON responses go through writeJSON; storage failures become a 500
//     with an {"error": ...} body
package server
