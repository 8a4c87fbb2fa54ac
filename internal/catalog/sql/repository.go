package catalogsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/awesomefonts/foundry/internal/catalog"
	"github.com/awesomefonts/foundry/internal/serviceerr"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) List(ctx context.Context) ([]catalog.Family, error) {
	rows, err := r.db.Query(
		ctx, `SELECT id, name, designer, price_cents
FROM font_families
ORDER BY name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("selecting from font_families: %w", err)
	}
	defer rows.Close()

	var families []catalog.Family
	for rows.Next() {
		var f catalog.Family
		if err := rows.Scan(&f.ID, &f.Name, &f.Designer, &f.PriceCents); err != nil {
			return nil, fmt.Errorf("scanning font family: %w", err)
		}
		families = append(families, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating font_families: %w", err)
	}

	return families, nil
}

func (r *Repository) Get(ctx context.Context, familyID string) (catalog.Family, error) {
	var f catalog.Family
	if err := r.db.QueryRow(
		ctx, `SELECT id, name, designer, price_cents
FROM font_families
WHERE id = $1;`,
		familyID,
	).Scan(&f.ID, &f.Name, &f.Designer, &f.PriceCents); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Family{}, serviceerr.ErrNotFound
		}

		return catalog.Family{}, fmt.Errorf("selecting from font_families: %w", err)
	}

	return f, nil
}
