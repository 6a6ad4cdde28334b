package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-backend/internal/models"
)

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

func (r *ContactRepo) Create(ctx context.Context, s *models.ContactSubmission) error {
	s.ID = uuid.New()

	query := `INSERT INTO contact_messages (id, name, email, subject, message, delivery)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		s.ID, s.Name, s.Email, s.Subject, s.Message, s.Delivery,
	).Scan(&s.CreatedAt)
}
