package application

import (
	"context"
	"testing"

	"github.com/jmanzanog/finrecords/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seedUser(t)
	svc := f.notificationService()

	tests := []struct {
		name     string
		req      CreateNotificationRequest
		wantErr  any
		wantType string
	}{
		{
			name:     "valid",
			req:      CreateNotificationRequest{Type: "ALERT", Message: "Budget exceeded", UserID: user.ID},
			wantType: "ALERT",
		},
		{
			name:    "unknown type",
			req:     CreateNotificationRequest{Type: "BOGUS", Message: "x", UserID: user.ID},
			wantErr: &domain.InvalidEnumValueError{},
		},
		{
			name:    "type is case sensitive",
			req:     CreateNotificationRequest{Type: "alert", Message: "x", UserID: user.ID},
			wantErr: &domain.InvalidEnumValueError{},
		},
		{
			name:    "unknown user",
			req:     CreateNotificationRequest{Type: "SYSTEM", Message: "x", UserID: "U404"},
			wantErr: &domain.NotFoundError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := total(t, f.notifications)
			view, err := svc.Create(ctx, tt.req)

			switch want := tt.wantErr.(type) {
			case *domain.InvalidEnumValueError:
				require.ErrorAs(t, err, &want)
				assert.Equal(t, "typeNotification", want.Field)
				assert.Equal(t, []string{"SYSTEM", "ALERT", "REMINDER", "RECOMMENDATION"}, want.Allowed)
				assert.Equal(t, before, total(t, f.notifications))
			case *domain.NotFoundError:
				require.ErrorAs(t, err, &want)
				assert.Equal(t, domain.KindUser, want.Kind)
				assert.Equal(t, before, total(t, f.notifications))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantType, view.Type)
				assert.False(t, view.IsRead)
				assert.Equal(t, before+1, total(t, f.notifications))
			}
		})
	}
}

func TestNotificationService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seedUser(t)
	n := f.seedNotification(t, user.ID)
	svc := f.notificationService()

	t.Run("only isRead changes", func(t *testing.T) {
		view, err := svc.Update(ctx, n.ID, UpdateNotificationRequest{IsRead: domain.Some(true)})
		require.NoError(t, err)

		assert.True(t, view.IsRead)
		assert.Equal(t, n.Message, view.Message)
		assert.Equal(t, string(n.Type), view.Type)
		assert.Equal(t, n.UserID, view.UserID)
	})

	t.Run("invalid type leaves record unchanged", func(t *testing.T) {
		before, err := f.notifications.FindByID(ctx, n.ID)
		require.NoError(t, err)

		_, err = svc.Update(ctx, n.ID, UpdateNotificationRequest{
			Type:    domain.Some("BOGUS"),
			Message: domain.Some("changed"),
		})
		var enumErr *domain.InvalidEnumValueError
		require.ErrorAs(t, err, &enumErr)

		after, err := f.notifications.FindByID(ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("unknown notification", func(t *testing.T) {
		_, err := svc.Update(ctx, "N404", UpdateNotificationRequest{IsRead: domain.Some(true)})
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.KindNotification, nf.Kind)
	})
}

func TestNotificationService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.seedUser(t)
	n := f.seedNotification(t, user.ID)
	svc := f.notificationService()

	require.NoError(t, svc.Delete(ctx, n.ID))
	assert.ErrorIs(t, svc.Delete(ctx, n.ID), domain.ErrRecordNotFound)
}
