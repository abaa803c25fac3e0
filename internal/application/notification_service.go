package application

import (
	"context"
	"fmt"
	"time"

	"github.com/jmanzanog/finrecords/internal/domain"
)

type NotificationService struct {
	notifications domain.NotificationRepository
	users         domain.UserRepository
	now           func() time.Time
}

func NewNotificationService(notifications domain.NotificationRepository, users domain.UserRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		now:           time.Now,
	}
}

func (s *NotificationService) List(ctx context.Context, pageIndex, pageSize int) (PageEnvelope[NotificationView], error) {
	return listPage(ctx, s.notifications, domain.KindNotification, pageIndex, pageSize, toNotificationView)
}

func (s *NotificationService) Get(ctx context.Context, id string) (*NotificationView, error) {
	n, err := resolve(ctx, s.notifications, domain.KindNotification, id)
	if err != nil {
		return nil, err
	}
	view := toNotificationView(n)
	return &view, nil
}

// Create stores a notification for an existing user. The creation time always
// comes from the service clock.
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*NotificationView, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	notificationType, err := domain.ParseNotificationType(req.Type)
	if err != nil {
		return nil, err
	}

	user, err := resolve(ctx, s.users, domain.KindUser, req.UserID)
	if err != nil {
		return nil, err
	}

	n := domain.NewNotification(notificationType, req.Message, req.IsRead, user.ID, s.now())
	if err := s.notifications.Save(ctx, &n); err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	view := toNotificationView(&n)
	return &view, nil
}

func (s *NotificationService) Update(ctx context.Context, id string, req UpdateNotificationRequest) (*NotificationView, error) {
	n, err := resolve(ctx, s.notifications, domain.KindNotification, id)
	if err != nil {
		return nil, err
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	if req.Type.Set {
		notificationType, err := domain.ParseNotificationType(req.Type.Value)
		if err != nil {
			return nil, err
		}
		n.Type = notificationType
	}

	if req.UserID.Set {
		user, err := resolve(ctx, s.users, domain.KindUser, req.UserID.Value)
		if err != nil {
			return nil, err
		}
		n.UserID = user.ID
	}

	req.Message.Apply(&n.Message)
	req.IsRead.Apply(&n.IsRead)

	if err := s.notifications.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}

	view := toNotificationView(n)
	return &view, nil
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.notifications, domain.KindNotification, id)
}
