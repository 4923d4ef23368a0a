// Package rooms covers management of the room inventory itself. Availability
// flips stay with the booking engine; this service only handles the records.
package rooms

import (
	"context"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	"github.com/google/uuid"
)

type Service struct {
	Rooms hotel.RoomDirectory
}

type AddInput struct {
	RoomNumber string
	Occupancy  string
	Category   string
	PriceCents int64
	ImagePath  string
}

func (s *Service) AddRoom(ctx context.Context, in AddInput) (*hotel.Room, error) {
	if _, err := s.Rooms.RoomByNumber(ctx, in.RoomNumber); err == nil {
		return nil, hotel.Conflict("duplicate room")
	} else if !hotel.IsNotFound(err) {
		return nil, err
	}
	cat, err := hotel.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	if in.PriceCents <= 0 {
		return nil, hotel.InvalidRequest("price must be positive")
	}
	now := time.Now().UTC()
	room := &hotel.Room{
		ID:         uuid.NewString(),
		RoomNumber: in.RoomNumber,
		Occupancy:  in.Occupancy,
		Category:   cat,
		PriceCents: in.PriceCents,
		ImagePath:  in.ImagePath,
		Status:     hotel.RoomAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Rooms.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

type UpdateInput struct {
	Occupancy  string
	Category   string
	PriceCents int64
	ImagePath  string
}

func (s *Service) UpdateRoom(ctx context.Context, id string, in UpdateInput) (*hotel.Room, error) {
	room, err := s.Rooms.RoomByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Category != "" {
		if room.Category, err = hotel.ParseCategory(in.Category); err != nil {
			return nil, err
		}
	}
	if in.Occupancy != "" {
		room.Occupancy = in.Occupancy
	}
	if in.PriceCents != 0 {
		if in.PriceCents < 0 {
			return nil, hotel.InvalidRequest("price must be positive")
		}
		room.PriceCents = in.PriceCents
	}
	if in.ImagePath != "" {
		room.ImagePath = in.ImagePath
	}
	room.UpdatedAt = time.Now().UTC()
	if err := s.Rooms.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) RoomByID(ctx context.Context, id string) (*hotel.Room, error) {
	return s.Rooms.RoomByID(ctx, id)
}

func (s *Service) RoomByNumber(ctx context.Context, number string) (*hotel.Room, error) {
	return s.Rooms.RoomByNumber(ctx, number)
}

func (s *Service) ListRooms(ctx context.Context) ([]hotel.Room, error) {
	return s.Rooms.ListRooms(ctx)
}

func (s *Service) RoomsByCategory(ctx context.Context, category string) ([]hotel.Room, error) {
	cat, err := hotel.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.Rooms.RoomsByCategory(ctx, cat)
}

func (s *Service) DeleteRoom(ctx context.Context, id string) error {
	if _, err := s.Rooms.RoomByID(ctx, id); err != nil {
		return err
	}
	return s.Rooms.DeleteRoom(ctx, id)
}

func (s *Service) DeleteRoomByNumber(ctx context.Context, number string) error {
	room, err := s.Rooms.RoomByNumber(ctx, number)
	if err != nil {
		return err
	}
	return s.Rooms.DeleteRoom(ctx, room.ID)
}
