package planet

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"biosphere-server/internal/archive"
	"biosphere-server/internal/shared/database"
	"biosphere-server/internal/shared/errors"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *Repository) Create(ctx context.Context, rec *Record, tx *database.Tx) error {
	exec := r.getExecutor(tx)

	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "create_planet",
		"planet_id", rec.ID,
		"name", rec.Name,
	)
	logger.Debug("Creating planet")

	if rec.Document == nil {
		return errors.Validation("planet record has no document")
	}
	raw, err := archive.Marshal(*rec.Document)
	if err != nil {
		logger.Error("Failed to encode planet document", "error", err)
		return fmt.Errorf("failed to encode planet document: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO planets (id, name, planet_type, seed, ecosystem_count, species_count, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)

	_, err = exec.ExecContext(ctx, query,
		rec.ID.String(),
		rec.Name,
		rec.PlanetType,
		rec.Seed,
		rec.EcosystemCount,
		rec.SpeciesCount,
		string(raw),
		rec.CreatedAt,
	)
	if database.IsUniqueViolation(err) {
		return errors.Conflictf("planet %s is already archived", rec.ID)
	}
	if err != nil {
		logger.Error("Failed to create planet", "error", err)
		return fmt.Errorf("failed to create planet: %w", err)
	}

	logger.Debug("Planet created successfully", "size_bytes", len(raw))
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "get_planet", "planet_id", id)
	logger.Debug("Getting planet by ID")

	query := r.db.Rebind(`
		SELECT id, name, planet_type, seed, ecosystem_count, species_count, created_at, document
		FROM planets
		WHERE id = $1
	`)

	var (
		rec    Record
		rawID  string
		rawDoc string
	)
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID,
		&rec.Name,
		&rec.PlanetType,
		&rec.Seed,
		&rec.EcosystemCount,
		&rec.SpeciesCount,
		&rec.CreatedAt,
		&rawDoc,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug("Planet not found")
			return nil, errors.NotFoundf("planet %s not found", id)
		}
		logger.Error("Database error getting planet", "error", err)
		return nil, fmt.Errorf("database error: %w", err)
	}

	if rec.ID, err = uuid.Parse(rawID); err != nil {
		return nil, errors.WrapInternal("stored planet id is malformed", err)
	}

	doc, err := archive.Unmarshal([]byte(rawDoc))
	if err != nil {
		logger.Error("Stored planet document is invalid", "error", err)
		return nil, errors.WrapInternal("stored planet document is invalid", err)
	}
	rec.Document = &doc

	return &rec, nil
}

// List returns archived planets newest first, without their documents.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Record, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "list_planets", "limit", limit, "offset", offset)
	logger.Debug("Listing planets")

	query := r.db.Rebind(`
		SELECT id, name, planet_type, seed, ecosystem_count, species_count, created_at
		FROM planets
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, fmt.Errorf("failed to query planets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	records := []Record{}
	for rows.Next() {
		var (
			rec   Record
			rawID string
		)
		err := rows.Scan(
			&rawID,
			&rec.Name,
			&rec.PlanetType,
			&rec.Seed,
			&rec.EcosystemCount,
			&rec.SpeciesCount,
			&rec.CreatedAt,
		)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, fmt.Errorf("failed to scan planet: %w", err)
		}
		if rec.ID, err = uuid.Parse(rawID); err != nil {
			return nil, errors.WrapInternal("stored planet id is malformed", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating planets: %w", err)
	}

	logger.Debug("Planets retrieved", "count", len(records))
	return records, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := r.logger.With("component", "planet_repository", "operation", "delete_planet", "planet_id", id)

	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM planets WHERE id = $1`), id.String())
	if err != nil {
		logger.Error("Failed to delete planet", "error", err)
		return fmt.Errorf("failed to delete planet: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read deleted rows: %w", err)
	}
	if affected == 0 {
		return errors.NotFoundf("planet %s not found", id)
	}

	logger.Info("Planet deleted")
	return nil
}
