// Package memstore is a mutex-guarded in-memory implementation of the hotel
// store interfaces, used by tests and as a storage-free dev mode. Composite
// operations mutate under one lock, mirroring the transactional discipline
// of the postgres store.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
)

type Store struct {
	mu       sync.Mutex
	users    map[string]hotel.User
	rooms    map[string]hotel.Room
	bookings map[string]hotel.Booking
	payments map[string]hotel.Payment // keyed by booking ID
}

func New() *Store {
	return &Store{
		users:    map[string]hotel.User{},
		rooms:    map[string]hotel.Room{},
		bookings: map[string]hotel.Booking{},
		payments: map[string]hotel.Payment{},
	}
}

// PutUser seeds a user record; the engine never writes users.
func (s *Store) PutUser(u hotel.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) UserByID(_ context.Context, id string) (*hotel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, hotel.NotFound("user not found")
	}
	return &u, nil
}

func (s *Store) RoomByID(_ context.Context, id string) (*hotel.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, hotel.NotFound("room not found")
	}
	return &r, nil
}

func (s *Store) RoomByNumber(_ context.Context, number string) (*hotel.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.RoomNumber == number {
			room := r
			return &room, nil
		}
	}
	return nil, hotel.NotFound("room not found")
}

func (s *Store) CreateRoom(_ context.Context, room *hotel.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.RoomNumber == room.RoomNumber {
			return hotel.Conflict("duplicate room")
		}
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *Store) UpdateRoom(_ context.Context, room *hotel.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		return hotel.NotFound("room not found")
	}
	for _, r := range s.rooms {
		if r.RoomNumber == room.RoomNumber && r.ID != room.ID {
			return hotel.Conflict("duplicate room")
		}
	}
	s.rooms[room.ID] = *room
	return nil
}

func (s *Store) DeleteRoom(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return hotel.NotFound("room not found")
	}
	delete(s.rooms, id)
	return nil
}

func (s *Store) ListRooms(_ context.Context) ([]hotel.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]hotel.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (s *Store) RoomsByCategory(_ context.Context, cat hotel.Category) ([]hotel.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []hotel.Room
	for _, r := range s.rooms {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (s *Store) CreateBooking(_ context.Context, b *hotel.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[b.RoomID]
	if !ok {
		return hotel.NotFound("room not found")
	}
	room.Status = hotel.RoomNotAvailable
	s.rooms[room.ID] = room
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) bookingLocked(id string) (hotel.Booking, bool) {
	b, ok := s.bookings[id]
	if !ok {
		return hotel.Booking{}, false
	}
	if p, ok := s.payments[id]; ok {
		b.Payment = &p
	}
	return b, true
}

func (s *Store) BookingByID(_ context.Context, id string) (*hotel.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookingLocked(id)
	if !ok {
		return nil, hotel.NotFound("booking not found")
	}
	return &b, nil
}

func (s *Store) BookingsByUser(_ context.Context, userID string) ([]hotel.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []hotel.Booking
	for id, b := range s.bookings {
		if b.UserID != userID {
			continue
		}
		full, _ := s.bookingLocked(id)
		out = append(out, full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) AttachPayment(_ context.Context, p *hotel.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[p.BookingID]
	if !ok {
		return hotel.NotFound("booking not found")
	}
	if _, exists := s.payments[p.BookingID]; exists {
		return hotel.Conflict("payment already exists for this booking")
	}
	s.payments[p.BookingID] = *p
	b.Status = hotel.StatusBooked
	s.bookings[b.ID] = b
	return nil
}

func (s *Store) CancelBooking(_ context.Context, bookingID, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return hotel.NotFound("booking not found")
	}
	b.Status = hotel.StatusCancelled
	s.bookings[bookingID] = b
	if room, ok := s.rooms[roomID]; ok {
		room.Status = hotel.RoomAvailable
		s.rooms[roomID] = room
	}
	return nil
}

func (s *Store) CompleteExpired(_ context.Context, before time.Time) (hotel.Sweep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sweep hotel.Sweep
	roomSet := map[string]bool{}
	for id, b := range s.bookings {
		if b.Status.Terminal() || !b.CheckOut.Before(before) {
			continue
		}
		b.Status = hotel.StatusCompleted
		s.bookings[id] = b
		sweep.BookingIDs = append(sweep.BookingIDs, id)
		roomSet[b.RoomID] = true
	}
	for id := range roomSet {
		if room, ok := s.rooms[id]; ok {
			room.Status = hotel.RoomAvailable
			s.rooms[id] = room
		}
		sweep.RoomIDs = append(sweep.RoomIDs, id)
	}
	sort.Strings(sweep.BookingIDs)
	sort.Strings(sweep.RoomIDs)
	return sweep, nil
}
