package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/document_tracking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
)

// --- Mock BlobStore ---
type MockBlobStore struct {
	mock.Mock
}

var _ portssvc.BlobStore = (*MockBlobStore)(nil)

func (m *MockBlobStore) Save(ctx context.Context, data []byte, suggestedName string) (string, error) {
	args := m.Called(ctx, data, suggestedName)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Mock DocumentCache ---
type MockDocumentCache struct {
	mock.Mock
}

var _ portssvc.DocumentCache = (*MockDocumentCache)(nil)

func (m *MockDocumentCache) Get(ctx context.Context, documentID string) (*domain.Document, bool) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Document), args.Bool(1)
}

func (m *MockDocumentCache) Set(ctx context.Context, document domain.Document) {
	m.Called(ctx, document)
}

func (m *MockDocumentCache) Invalidate(ctx context.Context, documentID string) {
	m.Called(ctx, documentID)
}

// --- Mock MailSender ---
type MockMailSender struct {
	mock.Mock
}

var _ portssvc.MailSender = (*MockMailSender)(nil)

func (m *MockMailSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserReader = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotificationsByReceiver(ctx context.Context, receiverID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, receiverID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID, receiverID string, readAt time.Time) error {
	args := m.Called(ctx, notificationID, receiverID, readAt)
	return args.Error(0)
}

// --- Mock ActivityLogRepository ---
type MockActivityLogRepository struct {
	mock.Mock
}

var _ portsrepo.ActivityLogRepositoryFacade = (*MockActivityLogRepository)(nil)

func (m *MockActivityLogRepository) SaveActivityLog(ctx context.Context, entry domain.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityLogRepository) ListActivityLogs(ctx context.Context, targetID string, limit int, nextToken *string) ([]domain.ActivityLog, *string, error) {
	args := m.Called(ctx, targetID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.ActivityLog), next, args.Error(2)
}
