package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/victim-store/internal/domain"
)

// VictimRepository implements domain.VictimRepository using SQLite.
// The victims table uses AUTOINCREMENT, so deleted IDs are never reissued.
type VictimRepository struct {
	db *sql.DB
}

// NewVictimRepository creates a new SQLite-backed VictimRepository.
func NewVictimRepository(db *DB) *VictimRepository {
	return &VictimRepository{db: db.SqlDB}
}

func (r *VictimRepository) Create(ctx context.Context, victim *domain.Victim) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO victims (name, description) VALUES (?, ?)`,
		victim.Name, victim.Description,
	)
	if err != nil {
		return fmt.Errorf("insert victim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	victim.ID = id
	return nil
}

func (r *VictimRepository) GetByID(ctx context.Context, id int64) (*domain.Victim, error) {
	v := &domain.Victim{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM victims WHERE id = ?`, id,
	).Scan(&v.ID, &v.Name, &v.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get victim by id: %w", err)
	}
	return v, nil
}

func (r *VictimRepository) List(ctx context.Context) ([]domain.Victim, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description FROM victims ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list victims: %w", err)
	}
	defer rows.Close()

	victims := []domain.Victim{}
	for rows.Next() {
		var v domain.Victim
		if err := rows.Scan(&v.ID, &v.Name, &v.Description); err != nil {
			return nil, fmt.Errorf("scan victim: %w", err)
		}
		victims = append(victims, v)
	}
	return victims, rows.Err()
}

// Update applies the patch in a single statement; NULL parameters keep the
// stored column value.
func (r *VictimRepository) Update(ctx context.Context, id int64, patch domain.VictimPatch) (*domain.Victim, error) {
	v := &domain.Victim{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE victims
		 SET name = COALESCE(?, name),
		     description = COALESCE(?, description),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?
		 RETURNING id, name, description`,
		nullString(patch.Name), nullString(patch.Description), id,
	).Scan(&v.ID, &v.Name, &v.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update victim: %w", err)
	}
	return v, nil
}

func (r *VictimRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM victims WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete victim: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
