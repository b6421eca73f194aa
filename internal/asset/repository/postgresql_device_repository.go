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

const postgresDeviceColumns = `id, device_type_id, inventory_number, serial_number, current_condition,
			  created_at, updated_at, updated_by`

// PostgreSQLDeviceRepository implements Device persistence for PostgreSQL databases.
type PostgreSQLDeviceRepository struct {
	db *sql.DB
}

// Get retrieves a device by id.
func (p *PostgreSQLDeviceRepository) Get(ctx context.Context, id uuid.UUID) (*assetDomain.Device, error) {
	query := `SELECT ` + postgresDeviceColumns + ` FROM devices WHERE id = $1`
	return p.get(ctx, query, id)
}

// GetForUpdate retrieves a device by id and locks its row until the surrounding transaction ends.
func (p *PostgreSQLDeviceRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*assetDomain.Device, error) {
	query := `SELECT ` + postgresDeviceColumns + ` FROM devices WHERE id = $1 FOR UPDATE`
	return p.get(ctx, query, id)
}

func (p *PostgreSQLDeviceRepository) get(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*assetDomain.Device, error) {
	querier := database.GetTx(ctx, p.db)

	var device assetDomain.Device
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&device.ID,
		&device.DeviceTypeID,
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

	return &device, nil
}

// UpdateCondition persists the device's condition and audit fields.
func (p *PostgreSQLDeviceRepository) UpdateCondition(ctx context.Context, device *assetDomain.Device) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE devices
			  SET current_condition = $1, updated_at = $2, updated_by = $3
			  WHERE id = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(device.Condition),
		device.UpdatedAt,
		device.UpdatedBy,
		device.ID,
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

// NewPostgreSQLDeviceRepository creates a new PostgreSQL Device repository.
func NewPostgreSQLDeviceRepository(db *sql.DB) *PostgreSQLDeviceRepository {
	return &PostgreSQLDeviceRepository{db: db}
}
