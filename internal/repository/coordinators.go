package repository

import (
	"context"
	"time"

	"github.com/ausf-dev/staffing-scheduler/backend/internal/domain"
)

func (r *Repository) GetCoordinatorByID(id int64) (*domain.Coordinator, error) {
	query := `
		SELECT username, password_hash, full_name, email, is_active, created_at, version
		FROM coordinators WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	coordinator := &domain.Coordinator{
		ID: id,
	}

	dst := []any{&coordinator.Username, &coordinator.PasswordHash, &coordinator.FullName, &coordinator.Email, &coordinator.IsActive, &coordinator.CreatedAt, &coordinator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return coordinator, nil
}

func (r *Repository) GetCoordinatorByUsername(username string) (*domain.Coordinator, error) {
	query := `
		SELECT id, password_hash, full_name, email, is_active, created_at, version
		FROM coordinators WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	coordinator := &domain.Coordinator{
		Username: username,
	}

	dst := []any{&coordinator.ID, &coordinator.PasswordHash, &coordinator.FullName, &coordinator.Email, &coordinator.IsActive, &coordinator.CreatedAt, &coordinator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return coordinator, nil
}

func (r *Repository) CreateCoordinator(coordinator *domain.Coordinator) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO coordinators (username, password_hash, full_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	args := []any{coordinator.Username, coordinator.PasswordHash, coordinator.FullName, coordinator.Email}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&coordinator.ID, &coordinator.IsActive, &coordinator.CreatedAt, &coordinator.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCoordinator(coordinator *domain.Coordinator) error {
	query := `
		UPDATE coordinators
		SET
			password_hash = $1,
			email = $2,
			is_active = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{coordinator.PasswordHash, coordinator.Email, coordinator.IsActive, coordinator.ID, coordinator.Version}
	dst := []any{&coordinator.Username, &coordinator.FullName, &coordinator.CreatedAt, &coordinator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}
