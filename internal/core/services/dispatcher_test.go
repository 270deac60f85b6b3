package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/document_tracking_app/internal/apperrors"
	"github.com/SscSPs/document_tracking_app/internal/core/domain"
	"github.com/SscSPs/document_tracking_app/internal/core/services"
	"github.com/SscSPs/document_tracking_app/internal/dto"
)

func TestDispatcher_SwallowsFailures(t *testing.T) {
	notifications := new(MockNotificationRepository)
	activityLogs := new(MockActivityLogRepository)
	users := new(MockUserRepository)
	mailer := new(MockMailSender)

	notifications.On("SaveNotification", mock.Anything, mock.Anything).Return(errors.New("db down"))
	activityLogs.On("SaveActivityLog", mock.Anything, mock.Anything).Return(errors.New("db down"))
	users.On("FindUserByID", mock.Anything, "alice").Return(&domain.User{UserID: "alice", Email: "alice@example.com"}, nil)
	mailer.On("Send", mock.Anything, "alice@example.com", "Hello", "World").Return(errors.New("smtp refused"))

	d := services.NewDispatcher(notifications, activityLogs, users, services.WithMailSender(mailer))
	assert.NotPanics(t, func() {
		d.Notify(context.Background(), "alice", "bob", "Hello", "World")
		d.LogActivity(context.Background(), "bob", "Approved document request", domain.TargetRequest, "req-1", nil)
	})
	d.Wait()

	notifications.AssertExpectations(t)
	activityLogs.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestDispatcher_NotifyPersistsAndMails(t *testing.T) {
	notifications := new(MockNotificationRepository)
	users := new(MockUserRepository)
	mailer := new(MockMailSender)

	notifications.On("SaveNotification", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.ReceiverID == "alice" && n.SenderID == "bob" && n.NotificationID != "" && !n.IsRead
	})).Return(nil).Once()
	users.On("FindUserByID", mock.Anything, "alice").Return(&domain.User{UserID: "alice", Email: "alice@example.com"}, nil)
	mailer.On("Send", mock.Anything, "alice@example.com", "Title", "Body").Return(nil).Once()

	d := services.NewDispatcher(notifications, new(MockActivityLogRepository), users, services.WithMailSender(mailer))
	ctx, cancel := context.WithCancel(context.Background())
	d.Notify(ctx, "alice", "bob", "Title", "Body")
	cancel()
	d.Wait()

	notifications.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestDispatcher_SkipsMailWithoutAddress(t *testing.T) {
	notifications := new(MockNotificationRepository)
	users := new(MockUserRepository)
	mailer := new(MockMailSender)
	notifications.On("SaveNotification", mock.Anything, mock.Anything).Return(nil)
	users.On("FindUserByID", mock.Anything, "alice").Return(&domain.User{UserID: "alice"}, nil)

	d := services.NewDispatcher(notifications, new(MockActivityLogRepository), users, services.WithMailSender(mailer))
	d.Notify(context.Background(), "alice", "bob", "Title", "Body")
	d.Wait()

	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_MarkNotificationRead(t *testing.T) {
	store := newFakeStore()
	d := services.NewDispatcher(store, store, store)
	ctx := context.Background()
	d.Notify(ctx, "alice", "bob", "Title", "Body")

	unread, err := d.ListNotifications(ctx, "alice", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	err = d.MarkNotificationRead(ctx, unread[0].NotificationID, "bob")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, d.MarkNotificationRead(ctx, unread[0].NotificationID, "alice"))
	unread, err = d.ListNotifications(ctx, "alice", true)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := d.ListNotifications(ctx, "alice", false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRead)
}

func TestDispatcher_ListActivityLogs(t *testing.T) {
	activityLogs := new(MockActivityLogRepository)
	d := services.NewDispatcher(new(MockNotificationRepository), activityLogs, new(MockUserRepository))
	ctx := context.Background()
	admin := domain.Actor{UserID: "root", Role: domain.RoleAdmin}

	_, err := d.ListActivityLogs(ctx, domain.Actor{UserID: "alice", Role: domain.RoleEmployee}, dto.ListActivityLogsParams{})
	assert.ErrorIs(t, err, apperrors.ErrPermission)

	bad := "not-a-token"
	_, err = d.ListActivityLogs(ctx, admin, dto.ListActivityLogsParams{NextToken: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	entries := []domain.ActivityLog{{ActivityLogID: "log-1", Action: "Created document", TargetID: "doc-1"}}
	activityLogs.On("ListActivityLogs", mock.Anything, "doc-1", 20, (*string)(nil)).Return(entries, "next", nil).Once()
	resp, err := d.ListActivityLogs(ctx, admin, dto.ListActivityLogsParams{TargetID: "doc-1"})
	require.NoError(t, err)
	require.Len(t, resp.ActivityLogs, 1)
	require.NotNil(t, resp.NextToken)
	assert.Equal(t, "next", *resp.NextToken)
	activityLogs.AssertExpectations(t)
}
