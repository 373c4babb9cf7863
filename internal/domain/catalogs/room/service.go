package room

import (
	"context"
	"fmt"
	"time"

	"posada/internal/core/id"
	"posada/internal/core/tx"
	"posada/internal/domain"
	"posada/pkg/logger"
)

// Service provides room and room-type catalog operations.
type Service struct {
	rooms     Repository
	types     TypeRepository
	txManager tx.Manager
}

// NewService creates a room catalog service.
func NewService(rooms Repository, types TypeRepository, txManager tx.Manager) *Service {
	return &Service{rooms: rooms, types: types, txManager: txManager}
}

// CreateRoom validates and persists a new room.
func (s *Service) CreateRoom(ctx context.Context, r *Room) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}
	if _, err := s.types.GetByID(ctx, r.RoomTypeID); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.rooms.Create(ctx, r)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "room created", "id", r.ID, "number", r.Number)
	return nil
}

// UpdateRoom persists room changes.
func (s *Service) UpdateRoom(ctx context.Context, r *Room) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.rooms.Update(ctx, r)
	})
}

// SetStatus transitions a room's operational status. Called by the stay
// service on check-in, room moves, and checkout.
func (s *Service) SetStatus(ctx context.Context, roomID id.ID, status OperationalStatus) error {
	r, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if r.Status == status {
		return nil
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	if err := s.rooms.Update(ctx, r); err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	return nil
}

// GetRoom fetches a room by ID.
func (s *Service) GetRoom(ctx context.Context, roomID id.ID) (*Room, error) {
	return s.rooms.GetByID(ctx, roomID)
}

// GetRoomWithType fetches a room and its type in one call.
func (s *Service) GetRoomWithType(ctx context.Context, roomID id.ID) (*Room, *RoomType, error) {
	r, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.types.GetByID(ctx, r.RoomTypeID)
	if err != nil {
		return nil, nil, err
	}
	return r, t, nil
}

// ListRooms returns rooms matching the filter.
func (s *Service) ListRooms(ctx context.Context, filter ListFilter) (domain.ListResult[*Room], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListLimit
	}
	return s.rooms.List(ctx, filter)
}

// CreateRoomType validates and persists a new room type.
func (s *Service) CreateRoomType(ctx context.Context, t *RoomType) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.types.Create(ctx, t)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "room type created", "id", t.ID, "name", t.Name)
	return nil
}

// UpdateRoomType persists room type changes.
func (s *Service) UpdateRoomType(ctx context.Context, t *RoomType) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC()
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.types.Update(ctx, t)
	})
}

// GetRoomType fetches a room type by ID.
func (s *Service) GetRoomType(ctx context.Context, typeID id.ID) (*RoomType, error) {
	return s.types.GetByID(ctx, typeID)
}

// ListRoomTypes returns room types matching the filter.
func (s *Service) ListRoomTypes(ctx context.Context, filter ListFilter) (domain.ListResult[*RoomType], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListLimit
	}
	return s.types.List(ctx, filter)
}
