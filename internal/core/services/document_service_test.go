package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	portssvc "github.com/SscSPs/document_tracking_app/internal/core/ports/services"
	"github.com/SscSPs/document_tracking_app/internal/core/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
)

func newDocumentService(store *fakeStore, opts ...services.ServiceOption) portssvc.DocumentSvcFacade {
	dispatcher := services.NewDispatcher(store, store, store)
	return services.NewDocumentService(store, store, store, dispatcher, opts...)
}

var sampleRequest = dto.CreateDocumentRequest{
	Title:       "Travel request",
	Description: "Conference in Lisbon",
	TypeID:      "travel",
}

func TestCreateDocument(t *testing.T) {
	store := newFakeStore()
	svc := newDocumentService(store)
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, sampleRequest, "creator")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, doc.Status)
	assert.Equal(t, "creator", doc.CreatorID)
	assert.NotEmpty(t, doc.DocumentID)

	logs := store.activities()
	require.Len(t, logs, 1)
	assert.Equal(t, doc.DocumentID, logs[0].TargetID)

	_, err = svc.CreateDocument(ctx, dto.CreateDocumentRequest{Description: "no title", TypeID: "x"}, "creator")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	blank := []dto.CreateDocumentRequest{
		{Title: "   ", Description: "d", TypeID: "t"},
		{Title: "t", Description: " ", TypeID: "t"},
		{Title: "t", Description: "d", TypeID: "\t"},
		{Title: "   ", Description: " ", TypeID: " "},
	}
	for _, req := range blank {
		_, err = svc.CreateDocument(ctx, req, "creator")
		assert.ErrorIs(t, err, apperrors.ErrValidation, "request %+v", req)
	}
	assert.Len(t, store.activities(), 1, "rejected requests must not create documents")

	padded, err := svc.CreateDocument(ctx, dto.CreateDocumentRequest{Title: "  Budget  ", Description: " Q4 ", TypeID: " finance "}, "creator")
	require.NoError(t, err)
	assert.Equal(t, "Budget", padded.Title)
	assert.Equal(t, "Q4", padded.Description)
	assert.Equal(t, "finance", padded.TypeID)
}

func TestCreateDocumentWithFile(t *testing.T) {
	ctx := context.Background()

	t.Run("stores file as version 1", func(t *testing.T) {
		store := newFakeStore()
		blob := new(MockBlobStore)
		blob.On("Save", mock.Anything, []byte("data"), "travel.pdf").Return("documents/2026-01-01/1_travel.pdf", nil).Once()
		svc := newDocumentService(store, services.WithBlobStore(blob))

		doc, version, err := svc.CreateDocumentWithFile(ctx, sampleRequest, domain.FileUpload{Name: "travel.pdf", Data: []byte("data")}, "creator")
		require.NoError(t, err)
		assert.Equal(t, 1, version.VersionNumber)
		assert.Equal(t, doc.DocumentID, version.DocumentID)
		assert.Equal(t, "documents/2026-01-01/1_travel.pdf", version.FilePath)
		blob.AssertExpectations(t)
	})

	t.Run("without blob store", func(t *testing.T) {
		svc := newDocumentService(newFakeStore())

		_, _, err := svc.CreateDocumentWithFile(ctx, sampleRequest, domain.FileUpload{Name: "a.pdf", Data: []byte("x")}, "creator")
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})

	t.Run("empty file", func(t *testing.T) {
		svc := newDocumentService(newFakeStore(), services.WithBlobStore(new(MockBlobStore)))

		_, _, err := svc.CreateDocumentWithFile(ctx, sampleRequest, domain.FileUpload{Name: "a.pdf"}, "creator")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("failed insert leaves no document", func(t *testing.T) {
		store := newFakeStore()
		blob := new(MockBlobStore)
		blob.On("Save", mock.Anything, mock.Anything, mock.Anything).Return("documents/x/1_a.pdf", nil)
		store.failNext("SaveVersion", errors.New("disk full"))
		svc := newDocumentService(store, services.WithBlobStore(blob))

		_, _, err := svc.CreateDocumentWithFile(ctx, sampleRequest, domain.FileUpload{Name: "a.pdf", Data: []byte("x")}, "creator")
		require.Error(t, err)
		store.mu.Lock()
		defer store.mu.Unlock()
		assert.Empty(t, store.documents)
	})
}

func TestAddVersion_ConcurrentCallsGetDistinctNumbers(t *testing.T) {
	store := newFakeStore()
	svc := newDocumentService(store)
	ctx := context.Background()
	doc, err := svc.CreateDocument(ctx, sampleRequest, "creator")
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddVersion(ctx, doc.DocumentID, fmt.Sprintf("documents/%d.pdf", i), "creator", "edit")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	versions, err := svc.ListVersions(ctx, doc.DocumentID)
	require.NoError(t, err)
	require.Len(t, versions, writers)
	numbers := make([]int, len(versions))
	for i, v := range versions {
		numbers[i] = v.VersionNumber
	}
	sort.Ints(numbers)
	for i, n := range numbers {
		assert.Equal(t, i+1, n)
	}
}

func TestAddVersion_Errors(t *testing.T) {
	svc := newDocumentService(newFakeStore())
	ctx := context.Background()

	_, err := svc.AddVersion(ctx, "missing", "documents/a.pdf", "creator", "edit")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AddVersion(ctx, "missing", " ", "creator", "edit")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUploadVersion(t *testing.T) {
	store := newFakeStore()
	blob := new(MockBlobStore)
	blob.On("Save", mock.Anything, mock.Anything, "v2.pdf").Return("documents/x/2_v2.pdf", nil)
	svc := newDocumentService(store, services.WithBlobStore(blob))
	ctx := context.Background()
	doc, err := svc.CreateDocument(ctx, sampleRequest, "creator")
	require.NoError(t, err)

	_, err = svc.UploadVersion(ctx, doc.DocumentID, domain.FileUpload{Name: "v2.pdf", Data: []byte("x")}, "fix", domain.Actor{UserID: "someone"})
	assert.ErrorIs(t, err, apperrors.ErrPermission)

	version, err := svc.UploadVersion(ctx, doc.DocumentID, domain.FileUpload{Name: "v2.pdf", Data: []byte("x")}, "fix", domain.Actor{UserID: "creator"})
	require.NoError(t, err)
	assert.Equal(t, 1, version.VersionNumber)
	assert.Equal(t, "fix", version.ChangeDescription)
}

func TestDeleteLatestVersion(t *testing.T) {
	store := newFakeStore()
	svc := newDocumentService(store)
	ctx := context.Background()
	doc, err := svc.CreateDocument(ctx, sampleRequest, "creator")
	require.NoError(t, err)

	err = svc.DeleteLatestVersion(ctx, doc.DocumentID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AddVersion(ctx, doc.DocumentID, "documents/1.pdf", "creator", "first")
	require.NoError(t, err)
	err = svc.DeleteLatestVersion(ctx, doc.DocumentID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "version 1 is never removed")

	_, err = svc.AddVersion(ctx, doc.DocumentID, "documents/2.pdf", "creator", "second")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteLatestVersion(ctx, doc.DocumentID))

	current, err := svc.CurrentVersion(ctx, doc.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.VersionNumber)
}

func TestDeleteDocument(t *testing.T) {
	store := newFakeStore()
	cache := new(MockDocumentCache)
	svc := newDocumentService(store, services.WithDocumentCache(cache))
	ctx := context.Background()
	doc, err := svc.CreateDocument(ctx, sampleRequest, "creator")
	require.NoError(t, err)

	err = svc.DeleteDocument(ctx, doc.DocumentID, domain.Actor{UserID: "someone", Role: domain.RoleEmployee})
	assert.ErrorIs(t, err, apperrors.ErrPermission)

	cache.On("Invalidate", mock.Anything, doc.DocumentID).Once()
	require.NoError(t, svc.DeleteDocument(ctx, doc.DocumentID, domain.Actor{UserID: "creator"}))
	cache.AssertExpectations(t)

	cache.On("Get", mock.Anything, doc.DocumentID).Return(nil, false)
	_, err = svc.GetDocument(ctx, doc.DocumentID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	raw, ok := store.rawDocument(doc.DocumentID)
	require.True(t, ok)
	assert.True(t, raw.IsDeleted)
}

func TestPurgeDocument(t *testing.T) {
	store := newFakeStore()
	svc := newDocumentService(store)
	ctx := context.Background()
	doc, err := svc.CreateDocument(ctx, sampleRequest, "creator")
	require.NoError(t, err)

	err = svc.PurgeDocument(ctx, doc.DocumentID, domain.Actor{UserID: "creator", Role: domain.RoleEmployee})
	assert.ErrorIs(t, err, apperrors.ErrPermission)

	require.NoError(t, svc.PurgeDocument(ctx, doc.DocumentID, domain.Actor{UserID: "root", Role: domain.RoleAdmin}))
	_, ok := store.rawDocument(doc.DocumentID)
	assert.False(t, ok)

	err = svc.PurgeDocument(ctx, doc.DocumentID, domain.Actor{UserID: "root", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetDocument_ReadThroughCache(t *testing.T) {
	store := newFakeStore()
	cache := new(MockDocumentCache)
	svc := newDocumentService(store, services.WithDocumentCache(cache))
	ctx := context.Background()
	doc, err := svc.CreateDocument(ctx, sampleRequest, "creator")
	require.NoError(t, err)

	cache.On("Get", mock.Anything, doc.DocumentID).Return(nil, false).Once()
	cache.On("Set", mock.Anything, mock.MatchedBy(func(d domain.Document) bool { return d.DocumentID == doc.DocumentID })).Once()
	got, err := svc.GetDocument(ctx, doc.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)

	cached := *doc
	cached.Title = "from cache"
	cache.On("Get", mock.Anything, doc.DocumentID).Return(&cached, true).Once()
	got, err = svc.GetDocument(ctx, doc.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, "from cache", got.Title)
	cache.AssertExpectations(t)
}
