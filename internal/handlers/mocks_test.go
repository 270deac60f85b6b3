package handlers_test

import (
	"context"

	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) CurrentVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentVersion), args.Error(1)
}
func (m *MockDocumentService) ListVersions(ctx context.Context, documentID string) ([]domain.DocumentVersion, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentVersion), args.Error(1)
}
func (m *MockDocumentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorID string) (*domain.Document, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) CreateDocumentWithFile(ctx context.Context, req dto.CreateDocumentRequest, file domain.FileUpload, creatorID string) (*domain.Document, *domain.DocumentVersion, error) {
	args := m.Called(ctx, req, file, creatorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Document), args.Get(1).(*domain.DocumentVersion), args.Error(2)
}
func (m *MockDocumentService) AddVersion(ctx context.Context, documentID, filePath, changedBy, changeDescription string) (*domain.DocumentVersion, error) {
	args := m.Called(ctx, documentID, filePath, changedBy, changeDescription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentVersion), args.Error(1)
}
func (m *MockDocumentService) UploadVersion(ctx context.Context, documentID string, file domain.FileUpload, changeDescription string, actor domain.Actor) (*domain.DocumentVersion, error) {
	args := m.Called(ctx, documentID, file, changeDescription, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentVersion), args.Error(1)
}
func (m *MockDocumentService) DeleteLatestVersion(ctx context.Context, documentID string) error {
	return m.Called(ctx, documentID).Error(0)
}
func (m *MockDocumentService) DeleteDocument(ctx context.Context, documentID string, actor domain.Actor) error {
	return m.Called(ctx, documentID, actor).Error(0)
}
func (m *MockDocumentService) PurgeDocument(ctx context.Context, documentID string, actor domain.Actor) error {
	return m.Called(ctx, documentID, actor).Error(0)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock RoutingService ---
type MockRoutingService struct {
	mock.Mock
}

func (m *MockRoutingService) RouteToApprovers(ctx context.Context, documentID, creatorID string, approverIDs []string) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx, documentID, creatorID, approverIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}
func (m *MockRoutingService) RequestsForDocument(ctx context.Context, documentID string) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}
func (m *MockRoutingService) AllRequestsInStatus(ctx context.Context, documentID string, statusID int) (bool, error) {
	args := m.Called(ctx, documentID, statusID)
	return args.Bool(0), args.Error(1)
}
func (m *MockRoutingService) RequestsForRecipient(ctx context.Context, userID string) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}

var _ portssvc.RoutingSvcFacade = (*MockRoutingService)(nil)

// --- Mock SignatureService ---
type MockSignatureService struct {
	mock.Mock
}

func (m *MockSignatureService) RegisterPlaceholders(ctx context.Context, documentID string, inputs []domain.PlaceholderInput, actor domain.Actor) ([]domain.SignaturePlaceholder, error) {
	args := m.Called(ctx, documentID, inputs, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SignaturePlaceholder), args.Error(1)
}
func (m *MockSignatureService) MarkSigned(ctx context.Context, placeholderID, signerID, signatureData string) (*domain.SignaturePlaceholder, error) {
	args := m.Called(ctx, placeholderID, signerID, signatureData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignaturePlaceholder), args.Error(1)
}
func (m *MockSignatureService) MarkSignedWithFile(ctx context.Context, placeholderID, signerID, signatureData string, signedFile *domain.FileUpload) (*domain.SignaturePlaceholder, error) {
	args := m.Called(ctx, placeholderID, signerID, signatureData, signedFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignaturePlaceholder), args.Error(1)
}
func (m *MockSignatureService) AllSigned(ctx context.Context, documentID string) (bool, error) {
	args := m.Called(ctx, documentID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSignatureService) UndoAllSignatures(ctx context.Context, documentID string) error {
	return m.Called(ctx, documentID).Error(0)
}
func (m *MockSignatureService) PlaceholdersForDocument(ctx context.Context, documentID string) ([]domain.SignaturePlaceholder, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SignaturePlaceholder), args.Error(1)
}

var _ portssvc.SignatureSvcFacade = (*MockSignatureService)(nil)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Approve(ctx context.Context, requestID, approverID string) (*domain.DocumentRequest, error) {
	args := m.Called(ctx, requestID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRequest), args.Error(1)
}
func (m *MockWorkflowService) Hold(ctx context.Context, requestID, approverID, remark string) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx, requestID, approverID, remark)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}
func (m *MockWorkflowService) Resume(ctx context.Context, documentID string, actor domain.Actor) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx, documentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}
func (m *MockWorkflowService) MarkComplete(ctx context.Context, requestID string, actor domain.Actor) (*domain.Document, error) {
	args := m.Called(ctx, requestID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockWorkflowService) UndoSignatures(ctx context.Context, documentID, performerID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID, performerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

var _ portssvc.WorkflowSvcFacade = (*MockWorkflowService)(nil)

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationService) MarkNotificationRead(ctx context.Context, notificationID, userID string) error {
	return m.Called(ctx, notificationID, userID).Error(0)
}
func (m *MockNotificationService) ListActivityLogs(ctx context.Context, actor domain.Actor, params dto.ListActivityLogsParams) (*dto.ListActivityLogsResponse, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListActivityLogsResponse), args.Error(1)
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

// --- Mock IdentityService ---
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Authenticate(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.IdentitySvc = (*MockIdentityService)(nil)
