package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/SunitaSingh93/Albergo/internal/hotel"
	"github.com/jackc/pgx/v5"
)

// CreateBooking: lock the room row (FOR UPDATE) -> insert booking -> flip the
// room to NOT_AVAILABLE. The lock serializes racing creates on one room;
// nothing here rejects a room that is already held, matching the single-flag
// availability model.
func (s *Store) CreateBooking(ctx context.Context, b *hotel.Booking) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM rooms WHERE id=$1 FOR UPDATE`, b.RoomID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return hotel.NotFound("room not found")
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO bookings(id, user_id, room_id, booking_date, check_in, check_out, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		b.ID, b.UserID, b.RoomID, b.BookingDate, b.CheckIn, b.CheckOut, b.Status,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE rooms SET status=$2, updated_at=now() WHERE id=$1`,
		b.RoomID, hotel.RoomNotAvailable); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const bookingCols = `
	b.id, b.user_id, b.room_id, b.booking_date, b.check_in, b.check_out, b.status,
	p.id, p.amount_cents, p.method, p.status, p.paid_at`

func scanBooking(row pgx.Row) (*hotel.Booking, error) {
	var (
		b       hotel.Booking
		payID   *string
		amount  *int64
		method  *string
		pstatus *string
		paidAt  *time.Time
	)
	err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.BookingDate, &b.CheckIn, &b.CheckOut, &b.Status,
		&payID, &amount, &method, &pstatus, &paidAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, hotel.NotFound("booking not found")
	}
	if err != nil {
		return nil, err
	}
	if payID != nil {
		b.Payment = &hotel.Payment{
			ID:          *payID,
			BookingID:   b.ID,
			AmountCents: *amount,
			Method:      hotel.Method(*method),
			Status:      hotel.PaymentStatus(*pstatus),
			PaidAt:      *paidAt,
		}
	}
	return &b, nil
}

func (s *Store) BookingByID(ctx context.Context, id string) (*hotel.Booking, error) {
	return scanBooking(s.DB.QueryRow(ctx, `
		SELECT `+bookingCols+`
		FROM bookings b LEFT JOIN payments p ON p.booking_id = b.id
		WHERE b.id=$1`, id))
}

func (s *Store) BookingsByUser(ctx context.Context, userID string) ([]hotel.Booking, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT `+bookingCols+`
		FROM bookings b LEFT JOIN payments p ON p.booking_id = b.id
		WHERE b.user_id=$1 ORDER BY b.booking_date, b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []hotel.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// AttachPayment: lock the booking row -> insert the single allowed payment ->
// move the booking to BOOKED. The payments.booking_id unique constraint backs
// the one-payment invariant even if two pay calls race.
func (s *Store) AttachPayment(ctx context.Context, p *hotel.Payment) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id=$1 FOR UPDATE`, p.BookingID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return hotel.NotFound("booking not found")
	}
	if err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, `
		INSERT INTO payments(id, booking_id, amount_cents, method, status, paid_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (booking_id) DO NOTHING`,
		p.ID, p.BookingID, p.AmountCents, p.Method, p.Status, p.PaidAt,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return hotel.Conflict("payment already exists for this booking")
	}
	if _, err := tx.Exec(ctx, `UPDATE bookings SET status=$2 WHERE id=$1`,
		p.BookingID, hotel.StatusBooked); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) CancelBooking(ctx context.Context, bookingID, roomID string) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx, `UPDATE bookings SET status=$2 WHERE id=$1`,
		bookingID, hotel.StatusCancelled)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return hotel.NotFound("booking not found")
	}
	if _, err := tx.Exec(ctx, `UPDATE rooms SET status=$2, updated_at=now() WHERE id=$1`,
		roomID, hotel.RoomAvailable); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CompleteExpired closes every active booking whose check-out is before the
// cutoff and releases the distinct set of rooms they held, in one
// transaction. Terminal bookings are excluded by the predicate, which is
// what makes re-runs no-ops.
func (s *Store) CompleteExpired(ctx context.Context, before time.Time) (hotel.Sweep, error) {
	var sweep hotel.Sweep

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return sweep, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		UPDATE bookings SET status=$1
		WHERE status NOT IN ($1, $2) AND check_out < $3
		RETURNING id, room_id`,
		hotel.StatusCompleted, hotel.StatusCancelled, before,
	)
	if err != nil {
		return sweep, err
	}
	roomSet := map[string]bool{}
	for rows.Next() {
		var bookingID, roomID string
		if err := rows.Scan(&bookingID, &roomID); err != nil {
			rows.Close()
			return sweep, err
		}
		sweep.BookingIDs = append(sweep.BookingIDs, bookingID)
		roomSet[roomID] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return sweep, err
	}
	if len(sweep.BookingIDs) == 0 {
		return sweep, tx.Commit(ctx)
	}

	for roomID := range roomSet {
		sweep.RoomIDs = append(sweep.RoomIDs, roomID)
	}
	if _, err := tx.Exec(ctx, `UPDATE rooms SET status=$1, updated_at=now() WHERE id = ANY($2)`,
		hotel.RoomAvailable, sweep.RoomIDs); err != nil {
		return sweep, err
	}
	return sweep, tx.Commit(ctx)
}
