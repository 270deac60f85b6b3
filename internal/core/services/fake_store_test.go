package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
)

type txKey struct{}

// fakeStore is an in-memory implementation of every repository. A
// transaction holds the store mutex for its whole duration and restores a
// snapshot when it fails, which gives the same serialisation and rollback
// guarantees the document lock gives against Postgres.
type fakeStore struct {
	mu            sync.Mutex
	documents     map[string]domain.Document
	versions      []domain.DocumentVersion
	requests      []domain.DocumentRequest
	placeholders  []domain.SignaturePlaceholder
	notifications []domain.Notification
	activityLogs  []domain.ActivityLog
	users         map[string]domain.User
	statuses      []domain.Status
	failOn        map[string]error
}

var (
	_ portsrepo.TransactionManager           = (*fakeStore)(nil)
	_ portsrepo.DocumentRepositoryFacade     = (*fakeStore)(nil)
	_ portsrepo.VersionRepositoryFacade      = (*fakeStore)(nil)
	_ portsrepo.RequestRepositoryFacade      = (*fakeStore)(nil)
	_ portsrepo.StatusReader                 = (*fakeStore)(nil)
	_ portsrepo.PlaceholderRepositoryFacade  = (*fakeStore)(nil)
	_ portsrepo.NotificationRepositoryFacade = (*fakeStore)(nil)
	_ portsrepo.ActivityLogRepositoryFacade  = (*fakeStore)(nil)
	_ portsrepo.UserReader                   = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	s := &fakeStore{
		documents: map[string]domain.Document{},
		users:     map[string]domain.User{},
		failOn:    map[string]error{},
	}
	for i, name := range domain.RequiredStatuses {
		s.statuses = append(s.statuses, domain.Status{StatusID: i + 1, Name: name})
	}
	return s
}

func (s *fakeStore) provider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TxManager:        s,
		DocumentRepo:     s,
		VersionRepo:      s,
		RequestRepo:      s,
		StatusRepo:       s,
		PlaceholderRepo:  s,
		NotificationRepo: s,
		ActivityLogRepo:  s,
		UserRepo:         s,
	}
}

type storeSnapshot struct {
	documents     map[string]domain.Document
	versions      []domain.DocumentVersion
	requests      []domain.DocumentRequest
	placeholders  []domain.SignaturePlaceholder
	notifications []domain.Notification
	activityLogs  []domain.ActivityLog
}

func (s *fakeStore) snapshot() storeSnapshot {
	docs := make(map[string]domain.Document, len(s.documents))
	for k, v := range s.documents {
		docs[k] = v
	}
	return storeSnapshot{
		documents:     docs,
		versions:      append([]domain.DocumentVersion(nil), s.versions...),
		requests:      append([]domain.DocumentRequest(nil), s.requests...),
		placeholders:  append([]domain.SignaturePlaceholder(nil), s.placeholders...),
		notifications: append([]domain.Notification(nil), s.notifications...),
		activityLogs:  append([]domain.ActivityLog(nil), s.activityLogs...),
	}
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.documents = snap.documents
	s.versions = snap.versions
	s.requests = snap.requests
	s.placeholders = snap.placeholders
	s.notifications = snap.notifications
	s.activityLogs = snap.activityLogs
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// guard takes the store mutex unless ctx already belongs to a transaction.
func (s *fakeStore) guard(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Test helpers. They must not be called while a transaction is running.

func (s *fakeStore) addUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
}

func (s *fakeStore) failNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

func (s *fakeStore) removeStatus(name domain.StatusName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.statuses[:0]
	for _, st := range s.statuses {
		if st.Name != name {
			kept = append(kept, st)
		}
	}
	s.statuses = kept
}

func (s *fakeStore) notificationsFor(userID string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.notifications {
		if n.ReceiverID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *fakeStore) allNotifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.notifications...)
}

func (s *fakeStore) activities() []domain.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActivityLog(nil), s.activityLogs...)
}

func (s *fakeStore) rawRequest(requestID string) domain.DocumentRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.RequestID == requestID {
			return r
		}
	}
	return domain.DocumentRequest{}
}

func (s *fakeStore) rawDocument(documentID string) (domain.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	return doc, ok
}

// fail returns the injected error for op once.
func (s *fakeStore) fail(op string) error {
	err := s.failOn[op]
	delete(s.failOn, op)
	return err
}

// --- documents ---

func (s *fakeStore) findDocument(documentID string) (*domain.Document, error) {
	doc, ok := s.documents[documentID]
	if !ok || doc.IsDeleted {
		return nil, apperrors.NewNotFoundError("document", documentID)
	}
	return &doc, nil
}

func (s *fakeStore) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	defer s.guard(ctx)()
	return s.findDocument(documentID)
}

func (s *fakeStore) SaveDocument(ctx context.Context, document domain.Document) error {
	defer s.guard(ctx)()
	if err := s.fail("SaveDocument"); err != nil {
		return err
	}
	if _, ok := s.documents[document.DocumentID]; ok {
		return apperrors.ErrDuplicate
	}
	s.documents[document.DocumentID] = document
	return nil
}

func (s *fakeStore) LockDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	if ctx.Value(txKey{}) == nil {
		return nil, errors.New("LockDocument called outside a transaction")
	}
	return s.findDocument(documentID)
}

func (s *fakeStore) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.StatusName, updatedAt time.Time) error {
	defer s.guard(ctx)()
	if err := s.fail("UpdateDocumentStatus"); err != nil {
		return err
	}
	doc, err := s.findDocument(documentID)
	if err != nil {
		return err
	}
	doc.Status = status
	doc.UpdatedAt = updatedAt
	s.documents[documentID] = *doc
	return nil
}

func (s *fakeStore) SoftDeleteDocument(ctx context.Context, documentID string, deletedAt time.Time) error {
	defer s.guard(ctx)()
	doc, err := s.findDocument(documentID)
	if err != nil {
		return err
	}
	doc.IsDeleted = true
	doc.UpdatedAt = deletedAt
	s.documents[documentID] = *doc
	for i := range s.requests {
		if s.requests[i].DocumentID == documentID {
			s.requests[i].IsDeleted = true
		}
	}
	for i := range s.placeholders {
		if s.placeholders[i].DocumentID == documentID {
			s.placeholders[i].IsDeleted = true
		}
	}
	return nil
}

func (s *fakeStore) PurgeDocument(ctx context.Context, documentID string) error {
	defer s.guard(ctx)()
	if _, ok := s.documents[documentID]; !ok {
		return apperrors.NewNotFoundError("document", documentID)
	}
	delete(s.documents, documentID)
	versions := s.versions[:0]
	for _, v := range s.versions {
		if v.DocumentID != documentID {
			versions = append(versions, v)
		}
	}
	s.versions = versions
	requests := s.requests[:0]
	for _, r := range s.requests {
		if r.DocumentID != documentID {
			requests = append(requests, r)
		}
	}
	s.requests = requests
	placeholders := s.placeholders[:0]
	for _, p := range s.placeholders {
		if p.DocumentID != documentID {
			placeholders = append(placeholders, p)
		}
	}
	s.placeholders = placeholders
	return nil
}

// --- versions ---

func (s *fakeStore) FindLatestVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error) {
	defer s.guard(ctx)()
	var latest *domain.DocumentVersion
	for i := range s.versions {
		v := s.versions[i]
		if v.DocumentID == documentID && (latest == nil || v.VersionNumber > latest.VersionNumber) {
			latest = &v
		}
	}
	return latest, nil
}

func (s *fakeStore) ListVersions(ctx context.Context, documentID string) ([]domain.DocumentVersion, error) {
	defer s.guard(ctx)()
	var out []domain.DocumentVersion
	for _, v := range s.versions {
		if v.DocumentID == documentID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber < out[j].VersionNumber })
	return out, nil
}

func (s *fakeStore) MaxVersionNumber(ctx context.Context, documentID string) (int, error) {
	defer s.guard(ctx)()
	max := 0
	for _, v := range s.versions {
		if v.DocumentID == documentID && v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max, nil
}

func (s *fakeStore) SaveVersion(ctx context.Context, version domain.DocumentVersion) error {
	defer s.guard(ctx)()
	if err := s.fail("SaveVersion"); err != nil {
		return err
	}
	for _, v := range s.versions {
		if v.DocumentID == version.DocumentID && v.VersionNumber == version.VersionNumber {
			return apperrors.ErrDuplicate
		}
	}
	s.versions = append(s.versions, version)
	return nil
}

func (s *fakeStore) DeleteVersion(ctx context.Context, versionID string) error {
	defer s.guard(ctx)()
	for i, v := range s.versions {
		if v.VersionID == versionID {
			s.versions = append(s.versions[:i], s.versions[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("version", versionID)
}

// --- requests and statuses ---

func (s *fakeStore) FindRequestByID(ctx context.Context, requestID string) (*domain.DocumentRequest, error) {
	defer s.guard(ctx)()
	for _, r := range s.requests {
		if r.RequestID == requestID && !r.IsDeleted {
			return &r, nil
		}
	}
	return nil, apperrors.NewNotFoundError("request", requestID)
}

func (s *fakeStore) ListRequestsByDocument(ctx context.Context, documentID string) ([]domain.DocumentRequest, error) {
	defer s.guard(ctx)()
	var out []domain.DocumentRequest
	for _, r := range s.requests {
		if r.DocumentID == documentID && !r.IsDeleted {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) ListRequestsByRecipient(ctx context.Context, userID string) ([]domain.DocumentRequest, error) {
	defer s.guard(ctx)()
	var out []domain.DocumentRequest
	for i := len(s.requests) - 1; i >= 0; i-- {
		if r := s.requests[i]; r.RecipientUserID == userID && !r.IsDeleted {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) SaveRequests(ctx context.Context, requests []domain.DocumentRequest) error {
	defer s.guard(ctx)()
	if err := s.fail("SaveRequests"); err != nil {
		return err
	}
	for _, req := range requests {
		for _, r := range s.requests {
			if r.DocumentID == req.DocumentID && r.RecipientUserID == req.RecipientUserID && !r.IsDeleted {
				return apperrors.ErrDuplicate
			}
		}
		s.requests = append(s.requests, req)
	}
	return nil
}

func (s *fakeStore) UpdateRequestStates(ctx context.Context, requests []domain.DocumentRequest) error {
	defer s.guard(ctx)()
	if err := s.fail("UpdateRequestStates"); err != nil {
		return err
	}
	for _, req := range requests {
		found := false
		for i := range s.requests {
			if s.requests[i].RequestID == req.RequestID {
				s.requests[i].StatusID = req.StatusID
				s.requests[i].Status = req.Status
				s.requests[i].Remarks = req.Remarks
				s.requests[i].CompletedAt = req.CompletedAt
				found = true
			}
		}
		if !found {
			return apperrors.NewNotFoundError("request", req.RequestID)
		}
	}
	return nil
}

func (s *fakeStore) FindStatusByName(ctx context.Context, name domain.StatusName) (*domain.Status, error) {
	defer s.guard(ctx)()
	for _, st := range s.statuses {
		if st.Name == name {
			return &st, nil
		}
	}
	return nil, apperrors.NewNotFoundError("status", string(name))
}

func (s *fakeStore) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	defer s.guard(ctx)()
	return append([]domain.Status(nil), s.statuses...), nil
}

// --- placeholders ---

func (s *fakeStore) FindPlaceholderByID(ctx context.Context, placeholderID string) (*domain.SignaturePlaceholder, error) {
	defer s.guard(ctx)()
	for _, p := range s.placeholders {
		if p.PlaceholderID == placeholderID && !p.IsDeleted {
			return &p, nil
		}
	}
	return nil, apperrors.NewNotFoundError("placeholder", placeholderID)
}

func (s *fakeStore) ListPlaceholdersByDocument(ctx context.Context, documentID string) ([]domain.SignaturePlaceholder, error) {
	defer s.guard(ctx)()
	var out []domain.SignaturePlaceholder
	for _, p := range s.placeholders {
		if p.DocumentID == documentID && !p.IsDeleted {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Page < out[j].Page })
	return out, nil
}

func (s *fakeStore) HasSignedPlaceholder(ctx context.Context, documentID, userID string) (bool, error) {
	defer s.guard(ctx)()
	for _, p := range s.placeholders {
		if p.DocumentID == documentID && p.AssignedToID == userID && p.IsSigned && !p.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) SavePlaceholders(ctx context.Context, placeholders []domain.SignaturePlaceholder) error {
	defer s.guard(ctx)()
	s.placeholders = append(s.placeholders, placeholders...)
	return nil
}

func (s *fakeStore) MarkPlaceholderSigned(ctx context.Context, placeholderID string, signatureData string, signedAt time.Time) error {
	defer s.guard(ctx)()
	for i := range s.placeholders {
		p := &s.placeholders[i]
		if p.PlaceholderID != placeholderID || p.IsDeleted {
			continue
		}
		if p.IsSigned {
			return apperrors.NewAlreadySignedError(placeholderID)
		}
		p.IsSigned = true
		p.SignedAt = &signedAt
		p.SignatureData = &signatureData
		return nil
	}
	return apperrors.NewNotFoundError("placeholder", placeholderID)
}

func (s *fakeStore) ResetPlaceholders(ctx context.Context, documentID string) (int64, error) {
	defer s.guard(ctx)()
	var n int64
	for i := range s.placeholders {
		p := &s.placeholders[i]
		if p.DocumentID != documentID {
			continue
		}
		p.IsSigned = false
		p.SignedAt = nil
		p.SignatureData = nil
		p.IsDeleted = false
		n++
	}
	return n, nil
}

// --- notifications, activity logs and users ---

func (s *fakeStore) SaveNotification(ctx context.Context, notification domain.Notification) error {
	defer s.guard(ctx)()
	if err := s.fail("SaveNotification"); err != nil {
		return err
	}
	s.notifications = append(s.notifications, notification)
	return nil
}

func (s *fakeStore) ListNotificationsByReceiver(ctx context.Context, receiverID string, unreadOnly bool) ([]domain.Notification, error) {
	defer s.guard(ctx)()
	var out []domain.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := s.notifications[i]
		if n.ReceiverID == receiverID && !n.IsDeleted && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeStore) MarkNotificationRead(ctx context.Context, notificationID, receiverID string, readAt time.Time) error {
	defer s.guard(ctx)()
	for i := range s.notifications {
		n := &s.notifications[i]
		if n.NotificationID == notificationID && n.ReceiverID == receiverID && !n.IsDeleted {
			n.IsRead = true
			n.ReadAt = &readAt
			return nil
		}
	}
	return apperrors.NewNotFoundError("notification", notificationID)
}

func (s *fakeStore) SaveActivityLog(ctx context.Context, entry domain.ActivityLog) error {
	defer s.guard(ctx)()
	if err := s.fail("SaveActivityLog"); err != nil {
		return err
	}
	s.activityLogs = append(s.activityLogs, entry)
	return nil
}

func (s *fakeStore) ListActivityLogs(ctx context.Context, targetID string, limit int, nextToken *string) ([]domain.ActivityLog, *string, error) {
	defer s.guard(ctx)()
	var out []domain.ActivityLog
	for i := len(s.activityLogs) - 1; i >= 0 && len(out) < limit; i-- {
		if e := s.activityLogs[i]; targetID == "" || e.TargetID == targetID {
			out = append(out, e)
		}
	}
	return out, nil, nil
}

func (s *fakeStore) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	defer s.guard(ctx)()
	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", userID)
	}
	return &user, nil
}
