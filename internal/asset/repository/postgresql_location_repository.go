package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
	"github.com/allisson/assettrack/internal/database"
	apperrors "github.com/allisson/assettrack/internal/errors"
)

// PostgreSQLLocationRepository implements current device Location persistence for PostgreSQL.
type PostgreSQLLocationRepository struct {
	db *sql.DB
}

// GetByDeviceID retrieves the current location of a device.
func (p *PostgreSQLLocationRepository) GetByDeviceID(
	ctx context.Context,
	deviceID uuid.UUID,
) (*assetDomain.Location, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, device_id, room_id, building_id, responsible_person_id,
			  created_at, updated_at, created_by, updated_by
			  FROM device_locations
			  WHERE device_id = $1`

	var location assetDomain.Location
	var responsiblePersonID uuid.NullUUID
	err := querier.QueryRowContext(ctx, query, deviceID).Scan(
		&location.ID,
		&location.DeviceID,
		&location.RoomID,
		&location.BuildingID,
		&responsiblePersonID,
		&location.CreatedAt,
		&location.UpdatedAt,
		&location.CreatedBy,
		&location.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assetDomain.ErrLocationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get device location")
	}
	location.ResponsiblePersonID = uuidPtr(responsiblePersonID)

	return &location, nil
}

// Upsert creates the device's location or overwrites the existing one. The unique device_id
// constraint keeps at most one row per device.
func (p *PostgreSQLLocationRepository) Upsert(ctx context.Context, location *assetDomain.Location) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO device_locations (id, device_id, room_id, building_id, responsible_person_id,
			  created_at, updated_at, created_by, updated_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (device_id) DO UPDATE SET
			  room_id = EXCLUDED.room_id,
			  building_id = EXCLUDED.building_id,
			  responsible_person_id = EXCLUDED.responsible_person_id,
			  updated_at = EXCLUDED.updated_at,
			  updated_by = EXCLUDED.updated_by`

	_, err := querier.ExecContext(
		ctx,
		query,
		location.ID,
		location.DeviceID,
		location.RoomID,
		location.BuildingID,
		nullUUID(location.ResponsiblePersonID),
		location.CreatedAt,
		location.UpdatedAt,
		location.CreatedBy,
		location.UpdatedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert device location")
	}
	return nil
}

// NewPostgreSQLLocationRepository creates a new PostgreSQL Location repository.
func NewPostgreSQLLocationRepository(db *sql.DB) *PostgreSQLLocationRepository {
	return &PostgreSQLLocationRepository{db: db}
}
