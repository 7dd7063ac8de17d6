package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/sales-os/internal/entity"
)

type VendorRepository struct {
	DB *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{DB: db}
}

func (r *VendorRepository) List(ctx context.Context) ([]entity.Vendor, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id::text, display_name, avatar_path FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar perfis: %w", err)
	}
	defer rows.Close()

	vendors := make([]entity.Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

func (r *VendorRepository) FindByID(ctx context.Context, id string) (*entity.Vendor, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id::text, display_name, avatar_path FROM profiles WHERE id = $1`, id)

	v, err := scanVendor(row)
	if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
		return nil, entity.ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar perfil: %w", err)
	}
	return v, nil
}

func (r *VendorRepository) UpsertDisplayName(ctx context.Context, id, displayName string) error {
	query := `
		INSERT INTO profiles (id, display_name, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			updated_at = NOW()
	`
	if _, err := r.DB.ExecContext(ctx, query, id, displayName); err != nil {
		if isInvalidText(err) {
			return entity.ErrVendorNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("nome já usado por outro perfil: %w", err)
		}
		return fmt.Errorf("erro ao salvar perfil: %w", err)
	}
	return nil
}

func scanVendor(row rowScanner) (*entity.Vendor, error) {
	var (
		v            entity.Vendor
		name, avatar sql.NullString
	)
	if err := row.Scan(&v.ID, &name, &avatar); err != nil {
		return nil, err
	}
	v.DisplayName = name.String
	v.AvatarPath = avatar.String
	return &v, nil
}
