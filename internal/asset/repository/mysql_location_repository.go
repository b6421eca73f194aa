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

// MySQLLocationRepository implements current device Location persistence for MySQL.
type MySQLLocationRepository struct {
	db *sql.DB
}

// GetByDeviceID retrieves the current location of a device.
func (m *MySQLLocationRepository) GetByDeviceID(
	ctx context.Context,
	deviceID uuid.UUID,
) (*assetDomain.Location, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, device_id, room_id, building_id, responsible_person_id,
			  created_at, updated_at, created_by, updated_by
			  FROM device_locations
			  WHERE device_id = ?`

	var location assetDomain.Location
	var rawID, rawDeviceID, rawRoomID, rawBuildingID, rawResponsiblePersonID []byte
	err := querier.QueryRowContext(ctx, query, binaryID(deviceID)).Scan(
		&rawID,
		&rawDeviceID,
		&rawRoomID,
		&rawBuildingID,
		&rawResponsiblePersonID,
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

	if location.ID, err = parseBinaryID(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal location id")
	}
	if location.DeviceID, err = parseBinaryID(rawDeviceID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal device id")
	}
	if location.RoomID, err = parseBinaryID(rawRoomID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal room id")
	}
	if location.BuildingID, err = parseBinaryID(rawBuildingID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal building id")
	}
	if location.ResponsiblePersonID, err = parseNullableBinaryID(rawResponsiblePersonID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal responsible person id")
	}

	return &location, nil
}

// Upsert creates the device's location or overwrites the existing one. The unique device_id
// index keeps at most one row per device.
func (m *MySQLLocationRepository) Upsert(ctx context.Context, location *assetDomain.Location) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO device_locations (id, device_id, room_id, building_id, responsible_person_id,
			  created_at, updated_at, created_by, updated_by)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  room_id = VALUES(room_id),
			  building_id = VALUES(building_id),
			  responsible_person_id = VALUES(responsible_person_id),
			  updated_at = VALUES(updated_at),
			  updated_by = VALUES(updated_by)`

	_, err := querier.ExecContext(
		ctx,
		query,
		binaryID(location.ID),
		binaryID(location.DeviceID),
		binaryID(location.RoomID),
		binaryID(location.BuildingID),
		nullableBinaryID(location.ResponsiblePersonID),
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

// NewMySQLLocationRepository creates a new MySQL Location repository.
func NewMySQLLocationRepository(db *sql.DB) *MySQLLocationRepository {
	return &MySQLLocationRepository{db: db}
}
