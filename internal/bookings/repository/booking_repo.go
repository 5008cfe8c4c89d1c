package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/weddingmoments/studio-backend/internal/bookings/domain"
	"github.com/weddingmoments/studio-backend/internal/cart"
)

const defaultListLimit = 100

// BookingRepository handles PostgreSQL operations for booking requests
type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateAll inserts every request in one transaction, filling in ids and
// request times.
func (r *BookingRepository) CreateAll(ctx context.Context, requests []*domain.BookingRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO booking_requests (
			id, service_id, service_name, sub_services, total_price, channel, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING requested_at
	`

	for _, req := range requests {
		if req.ID == "" {
			req.ID = uuid.New().String()
		}
		if req.Status == "" {
			req.Status = domain.StatusPending
		}

		subsJSON, err := json.Marshal(req.SubServices)
		if err != nil {
			return fmt.Errorf("failed to marshal sub-services: %w", err)
		}

		err = tx.QueryRowContext(ctx, query,
			req.ID,
			req.ServiceID,
			req.ServiceName,
			subsJSON,
			req.TotalPrice,
			string(req.Channel),
			string(req.Status),
		).Scan(&req.RequestedAt)
		if err != nil {
			return fmt.Errorf("failed to create booking request: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking requests: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.BookingRequest, error) {
	query := `
		SELECT id, service_id, service_name, sub_services, total_price, channel, status, requested_at
		FROM booking_requests
		WHERE id = $1
	`

	req, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking request: %w", err)
	}
	return req, nil
}

// List returns the newest requests first. An empty status matches all.
func (r *BookingRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.BookingRequest, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}

	query := `
		SELECT id, service_id, service_name, sub_services, total_price, channel, status, requested_at
		FROM booking_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY requested_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, string(filter.Status), filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking requests: %w", err)
	}
	defer rows.Close()

	var out []*domain.BookingRequest
	for rows.Next() {
		req, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking requests: %w", err)
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	query := `UPDATE booking_requests SET status = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	var subsJSON []byte
	var channel, status string

	if err := row.Scan(
		&req.ID,
		&req.ServiceID,
		&req.ServiceName,
		&subsJSON,
		&req.TotalPrice,
		&channel,
		&status,
		&req.RequestedAt,
	); err != nil {
		return nil, err
	}

	req.Channel = domain.Channel(channel)
	req.Status = domain.Status(status)
	req.SubServices = []cart.SelectedSubService{}
	if len(subsJSON) > 0 {
		if err := json.Unmarshal(subsJSON, &req.SubServices); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sub-services: %w", err)
		}
	}
	return &req, nil
}
