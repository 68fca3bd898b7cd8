package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sportmeet/api/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const recentItemsLimit = 5

type AdminService struct {
	userStore    UserStore
	eventStore   EventStore
	contactStore ContactStore
}

func NewAdminService(userStore UserStore, eventStore EventStore, contactStore ContactStore) *AdminService {
	return &AdminService{
		userStore:    userStore,
		eventStore:   eventStore,
		contactStore: contactStore,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.userStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.Password = ""
	}
	return users, nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, hexID, role string) (*entity.User, error) {
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: invalid role %q", entity.ErrValidation, role)
	}

	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, entity.ErrNotFound
	}

	user, err := s.userStore.UpdateOne(ctx, id, bson.M{"role": role})
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// DeleteUser removes an account and everything hanging off it:
//
//  1. events the user organizes are deleted outright,
//  2. the user is pulled from every remaining participant set,
//  3. the user record itself is deleted.
//
// The steps run in order with no transaction. Each one is idempotent, so on
// a store failure the operation aborts where it is and can simply be
// re-run. Admins cannot delete other admins, only themselves.
func (s *AdminService) DeleteUser(ctx context.Context, adminID primitive.ObjectID, hexID string) error {
	targetID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return entity.ErrNotFound
	}

	target, err := s.userStore.FindOneByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.IsAdmin() && target.ID != adminID {
		return fmt.Errorf("%w: cannot delete other admin users", entity.ErrForbidden)
	}

	deleted, err := s.eventStore.DeleteManyByOrganizerID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("deleting organized events: %w", err)
	}

	if err := s.eventStore.PullParticipantFromAll(ctx, targetID); err != nil {
		return fmt.Errorf("removing event memberships: %w", err)
	}

	if err := s.userStore.DeleteOneByID(ctx, targetID); err != nil {
		return fmt.Errorf("deleting user record: %w", err)
	}

	log.Info().
		Str("userId", targetID.Hex()).
		Str("deletedBy", adminID.Hex()).
		Int64("eventsDeleted", deleted).
		Msg("user deleted with cascade")

	return nil
}

func (s *AdminService) ListEvents(ctx context.Context) ([]*entity.Event, error) {
	return s.eventStore.FindAll(ctx)
}

func (s *AdminService) DeleteEvent(ctx context.Context, hexID string) error {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return entity.ErrNotFound
	}

	return s.eventStore.DeleteOneByID(ctx, id)
}

type DashboardStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalEvents         int64 `json:"totalEvents"`
	ActiveEvents        int64 `json:"activeEvents"`
	TotalContacts       int64 `json:"totalContacts"`
	TotalParticipations int64 `json:"totalParticipations"`
}

type Dashboard struct {
	Stats        DashboardStats  `json:"stats"`
	RecentUsers  []*entity.User  `json:"recentUsers"`
	RecentEvents []*entity.Event `json:"recentEvents"`
}

// GetDashboard assembles the admin landing page numbers. The counts are
// independent reads, so they fan out concurrently.
func (s *AdminService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		dashboard.Stats.TotalUsers, err = s.userStore.CountAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Stats.TotalEvents, err = s.eventStore.CountAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Stats.ActiveEvents, err = s.eventStore.CountUpcoming(ctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Stats.TotalContacts, err = s.contactStore.CountAll(ctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Stats.TotalParticipations, err = s.eventStore.CountParticipations(ctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.RecentUsers, err = s.userStore.FindManyRecent(ctx, recentItemsLimit)
		if err == nil {
			for _, user := range dashboard.RecentUsers {
				user.Password = ""
			}
		}
		return err
	})
	g.Go(func() (err error) {
		dashboard.RecentEvents, err = s.eventStore.FindManyRecent(ctx, recentItemsLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard, nil
}
