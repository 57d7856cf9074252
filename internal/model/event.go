package model

import "encoding/json"

// ChangeOp is what happened to a stored record.
type ChangeOp string

const (
	ChangeCreated  ChangeOp = "created"
	ChangeModified ChangeOp = "modified"
	ChangeDeleted  ChangeOp = "deleted"
)

// ChangeKind is which kind of record changed.
type ChangeKind string

const (
	ChangeKindJob       ChangeKind = "job"
	ChangeKindBoard     ChangeKind = "board"
	ChangeKindCandidate ChangeKind = "candidate"
)

// ChangeEvent is pushed to websocket subscribers when the data directory
// changes. Seq increases by one per event emitted by a server.
type ChangeEvent struct {
	Seq  uint64     `json:"seq"`
	Op   ChangeOp   `json:"op"`
	Kind ChangeKind `json:"kind"`
	ID   string     `json:"id,omitempty"` // job or candidate id
	Path string     `json:"path"`         // relative to the data directory
}

// AffectsOrdering reports whether a job listing may be stale after e.
func (e ChangeEvent) AffectsOrdering() bool {
	return e.Kind == ChangeKindJob || e.Kind == ChangeKindBoard
}

// Websocket message types.
const (
	MessageConnected = "connected"
	MessageChange    = "change"
)

// Message is the websocket envelope.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}
