package services

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

type pendingNotification struct {
	receiverID, senderID, title, message string
}

// effects buffers the side effects of a transition. They are emitted by
// flush once the transaction has committed and dropped if it rolls back.
type effects struct {
	notifications []pendingNotification
	activities    []domain.ActivityLog
	touched       []string
}

func (e *effects) notify(receiverID, senderID, title, message string) {
	e.notifications = append(e.notifications, pendingNotification{receiverID, senderID, title, message})
}

// notifyAll sends one notification to each distinct receiver except skipID.
func (e *effects) notifyAll(receiverIDs []string, skipID, senderID, title, message string) {
	seen := make(map[string]bool, len(receiverIDs))
	for _, id := range receiverIDs {
		if id == "" || id == skipID || seen[id] {
			continue
		}
		seen[id] = true
		e.notify(id, senderID, title, message)
	}
}

func (e *effects) logActivity(performedBy, action, targetType, targetID string, remarks *string) {
	e.activities = append(e.activities, domain.ActivityLog{
		PerformedBy: performedBy,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Remarks:     remarks,
	})
}

// touch marks a document whose cached copy is stale.
func (e *effects) touch(documentID string) {
	e.touched = append(e.touched, documentID)
}

// flush runs after commit. Cache entries are dropped first so readers never
// see a stale document after being notified about it.
func (e *effects) flush(ctx context.Context, dispatcher portssvc.DispatcherSvc, cache portssvc.DocumentCache) {
	if cache != nil {
		for _, id := range e.touched {
			cache.Invalidate(ctx, id)
		}
	}
	if dispatcher == nil {
		return
	}
	for _, a := range e.activities {
		dispatcher.LogActivity(ctx, a.PerformedBy, a.Action, a.TargetType, a.TargetID, a.Remarks)
	}
	for _, n := range e.notifications {
		dispatcher.Notify(ctx, n.receiverID, n.senderID, n.title, n.message)
	}
}
