package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dojo/internal/models"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id string) (*models.Branch, error)
	List(ctx context.Context, limit int, offset int) ([]models.Branch, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id string, req *models.UpdateBranchRequest) error
	UpdateImageURL(ctx context.Context, id string, imageURL string) error
	Delete(ctx context.Context, id string) error
}

type branchRepository struct {
	db *sql.DB
}

func NewBranchRepository(db *sql.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *models.Branch) error {
	query := `
		INSERT INTO branches (id, name, address, city, phone, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, branch.ID, branch.Name, branch.Address, branch.City, branch.Phone, branch.IsActive, branch.CreatedAt).Scan(&branch.CreatedAt)
	return err
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	query := `
		SELECT id, name, address, city, phone, image_url, is_active, created_at
		FROM branches
		WHERE id = $1
	`

	var b models.Branch
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Phone, &b.ImageURL, &b.IsActive, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("branch not found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *branchRepository) List(ctx context.Context, limit int, offset int) ([]models.Branch, error) {
	query := `
		SELECT id, name, address, city, phone, image_url, is_active, created_at
		FROM branches
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []models.Branch
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.City, &b.Phone, &b.ImageURL, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	return branches, rows.Err()
}

func (r *branchRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM branches`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *branchRepository) Update(ctx context.Context, id string, req *models.UpdateBranchRequest) error {
	query := `
		UPDATE branches
		SET name = COALESCE($1, name),
			address = COALESCE($2, address),
			city = COALESCE($3, city),
			phone = COALESCE($4, phone),
			is_active = COALESCE($5, is_active)
		WHERE id = $6
		RETURNING id
	`

	var outID string
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Address, req.City, req.Phone, req.IsActive, id).Scan(&outID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("branch not found")
		}
		return err
	}
	return nil
}

func (r *branchRepository) UpdateImageURL(ctx context.Context, id string, imageURL string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE branches SET image_url = $1 WHERE id = $2`, imageURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("branch not found")
	}
	return nil
}

func (r *branchRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("branch not found")
	}
	return nil
}
