package postgres

import (
	"context"
	"errors"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements the hotel store interfaces over a pgx pool. Composite
// booking operations run inside a single transaction.
type Store struct{ DB *pgxpool.Pool }

const uniqueViolation = "23505"

func isUnique(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const roomCols = `id, room_number, occupancy, category, price_cents, image_path, status, created_at, updated_at`

func scanRoom(row pgx.Row) (*hotel.Room, error) {
	var r hotel.Room
	err := row.Scan(&r.ID, &r.RoomNumber, &r.Occupancy, &r.Category, &r.PriceCents,
		&r.ImagePath, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, hotel.NotFound("room not found")
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) RoomByID(ctx context.Context, id string) (*hotel.Room, error) {
	return scanRoom(s.DB.QueryRow(ctx, `SELECT `+roomCols+` FROM rooms WHERE id=$1`, id))
}

func (s *Store) RoomByNumber(ctx context.Context, number string) (*hotel.Room, error) {
	return scanRoom(s.DB.QueryRow(ctx, `SELECT `+roomCols+` FROM rooms WHERE room_number=$1`, number))
}

func (s *Store) CreateRoom(ctx context.Context, room *hotel.Room) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO rooms(id, room_number, occupancy, category, price_cents, image_path, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		room.ID, room.RoomNumber, room.Occupancy, room.Category, room.PriceCents,
		room.ImagePath, room.Status, room.CreatedAt, room.UpdatedAt,
	)
	if isUnique(err) {
		return hotel.Conflict("duplicate room")
	}
	return err
}

func (s *Store) UpdateRoom(ctx context.Context, room *hotel.Room) error {
	ct, err := s.DB.Exec(ctx, `
		UPDATE rooms SET occupancy=$2, category=$3, price_cents=$4, image_path=$5, updated_at=$6
		WHERE id=$1`,
		room.ID, room.Occupancy, room.Category, room.PriceCents, room.ImagePath, room.UpdatedAt,
	)
	if isUnique(err) {
		return hotel.Conflict("duplicate room")
	}
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return hotel.NotFound("room not found")
	}
	return nil
}

func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return hotel.NotFound("room not found")
	}
	return nil
}

func (s *Store) roomList(ctx context.Context, query string, args ...any) ([]hotel.Room, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []hotel.Room
	for rows.Next() {
		var r hotel.Room
		if err := rows.Scan(&r.ID, &r.RoomNumber, &r.Occupancy, &r.Category, &r.PriceCents,
			&r.ImagePath, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListRooms(ctx context.Context) ([]hotel.Room, error) {
	return s.roomList(ctx, `SELECT `+roomCols+` FROM rooms ORDER BY room_number`)
}

func (s *Store) RoomsByCategory(ctx context.Context, cat hotel.Category) ([]hotel.Room, error) {
	return s.roomList(ctx, `SELECT `+roomCols+` FROM rooms WHERE category=$1 ORDER BY room_number`, cat)
}

func (s *Store) UserByID(ctx context.Context, id string) (*hotel.User, error) {
	var u hotel.User
	err := s.DB.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, gender, role, created_at
		FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Gender, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, hotel.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
