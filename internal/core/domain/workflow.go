package domain

import (
	"errors"
	"fmt"
)

// Action is a workflow command applied to a document request.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionHold     Action = "hold"
	ActionResume   Action = "resume"
	ActionComplete Action = "complete"
	ActionUndo     Action = "undo"
)

// ErrIllegalTransition is returned when an action is not allowed from a request's current status.
var ErrIllegalTransition = errors.New("illegal workflow transition")

// NextRequestStatus returns the status a request moves to when action is
// applied. A result equal to current means the action is a no-op.
func NextRequestStatus(current StatusName, action Action) (StatusName, error) {
	switch action {
	case ActionApprove:
		switch current {
		case StatusPending, StatusInProcess, StatusApproved:
			return StatusApproved, nil
		}
	case ActionHold:
		switch current {
		case StatusPending, StatusInProcess, StatusApproved, StatusOnHold:
			return StatusOnHold, nil
		}
	case ActionResume:
		if current == StatusOnHold {
			return StatusInProcess, nil
		}
	case ActionComplete:
		switch current {
		case StatusApproved, StatusCompleted:
			return StatusCompleted, nil
		}
	case ActionUndo:
		switch current {
		case StatusApproved, StatusInProcess:
			return StatusInProcess, nil
		case StatusPending, StatusOnHold:
			return current, nil
		}
	default:
		return current, fmt.Errorf("%w: unknown action %q", ErrIllegalTransition, action)
	}
	return current, fmt.Errorf("%w: cannot %s a request that is %s", ErrIllegalTransition, action, current)
}

// DeriveDocumentStatus projects the live requests of a document onto the
// document-level status.
func DeriveDocumentStatus(requests []DocumentRequest) StatusName {
	var live, approved, completed, onHold int
	for _, r := range requests {
		if r.IsDeleted {
			continue
		}
		live++
		switch r.Status {
		case StatusApproved:
			approved++
		case StatusCompleted:
			completed++
		case StatusOnHold:
			onHold++
		}
	}

	switch {
	case live == 0:
		return StatusPending
	case onHold > 0:
		return StatusOnHold
	case completed == live:
		return StatusCompleted
	case approved+completed == live:
		return StatusAwaitingCompletion
	default:
		return StatusInProcess
	}
}

// AllInStatus reports whether every live request is in status. It is false
// for a document without live requests.
func AllInStatus(requests []DocumentRequest, status StatusName) bool {
	live := 0
	for _, r := range requests {
		if r.IsDeleted {
			continue
		}
		live++
		if r.Status != status {
			return false
		}
	}
	return live > 0
}
