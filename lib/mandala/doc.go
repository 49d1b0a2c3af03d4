// Package mandala provides a Go client for the mandala planner HTTP API.
//
// The client covers chart and goal CRUD with optimistic concurrency, AI
// suggestion generation, and SSE subscriptions for goal change events. Goal
// updates carry a version token (the record's updated_at timestamp); an
// update that loses the version race returns *ConflictError with the server
// row and the field-level diff, ready for a reload-or-discard dialog.
//
// The editor and conflict subpackages implement the client-side edit
// lifecycle: debounced draft validation with serialized saves, and the
// deterministic conflict diff. FieldEditor in this package wires them to
// the HTTP client.
package mandala
