// Package reorder keeps a client-visible ordered collection in sync with an
// authoritative backend ordering. Moves apply locally first and are then
// committed; a failed commit is recovered by reloading the whole collection.
package reorder

import (
	tferr "github.com/talentflow/talentflow/internal/errors"
)

// Move returns a copy of s with the element at from removed and reinserted
// at to. The reinsertion index is relative to the already-shortened
// sequence, so [A B C D] with from=0, to=2 yields [B C A D].
// s itself is never modified.
func Move[S ~[]E, E any](s S, from, to int) (S, error) {
	if from < 0 || from >= len(s) {
		return nil, &tferr.PreconditionError{Op: "move from", Index: from, Length: len(s)}
	}
	if to < 0 || to >= len(s) {
		return nil, &tferr.PreconditionError{Op: "move to", Index: to, Length: len(s)}
	}

	out := make(S, 0, len(s))
	out = append(out, s[:from]...)
	out = append(out, s[from+1:]...)

	moved := s[from]
	out = append(out, moved) // grow by one, then shift the tail right
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out, nil
}
