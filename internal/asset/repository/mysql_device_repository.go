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

const mysqlDeviceColumns = `id, device_type_id, inventory_number, serial_number, current_condition,
			  created_at, updated_at, updated_by`

// MySQLDeviceRepository implements Device persistence for MySQL databases.
type MySQLDeviceRepository struct {
	db *sql.DB
}

// Get retrieves a device by id.
func (m *MySQLDeviceRepository) Get(ctx context.Context, id uuid.UUID) (*assetDomain.Device, error) {
	query := `SELECT ` + mysqlDeviceColumns + ` FROM devices WHERE id = ?`
	return m.get(ctx, query, id)
}

// GetForUpdate retrieves a device by id and locks its row until the surrounding transaction ends.
func (m *MySQLDeviceRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*assetDomain.Device, error) {
	query := `SELECT ` + mysqlDeviceColumns + ` FROM devices WHERE id = ? FOR UPDATE`
	return m.get(ctx, query, id)
}

func (m *MySQLDeviceRepository) get(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*assetDomain.Device, error) {
	querier := database.GetTx(ctx, m.db)

	var device assetDomain.Device
	var rawID, rawDeviceTypeID []byte
	err := querier.QueryRowContext(ctx, query, binaryID(id)).Scan(
		&rawID,
		&rawDeviceTypeID,
		&device.InventoryNumber,
		&device.SerialNumber,
		&device.Condition,
		&device.CreatedAt,
		&device.UpdatedAt,
		&device.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assetDomain.ErrDeviceNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get device")
	}

	if device.ID, err = parseBinaryID(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal device id")
	}
	if device.DeviceTypeID, err = parseBinaryID(rawDeviceTypeID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal device type id")
	}

	return &device, nil
}

// UpdateCondition persists the device's condition and audit fields.
func (m *MySQLDeviceRepository) UpdateCondition(ctx context.Context, device *assetDomain.Device) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE devices
			  SET current_condition = ?, updated_at = ?, updated_by = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(device.Condition),
		device.UpdatedAt,
		device.UpdatedBy,
		binaryID(device.ID),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update device condition")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return assetDomain.ErrDeviceNotFound
	}
	return nil
}

// NewMySQLDeviceRepository creates a new MySQL Device repository.
func NewMySQLDeviceRepository(db *sql.DB) *MySQLDeviceRepository {
	return &MySQLDeviceRepository{db: db}
}
