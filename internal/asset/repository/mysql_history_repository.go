package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
	"github.com/allisson/assettrack/internal/database"
	apperrors "github.com/allisson/assettrack/internal/errors"
)

// MySQLLocationHistoryRepository implements the append-only move log for MySQL.
type MySQLLocationHistoryRepository struct {
	db *sql.DB
}

// Create appends a move record.
func (m *MySQLLocationHistoryRepository) Create(
	ctx context.Context,
	history *assetDomain.LocationHistory,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO device_location_history (id, device_id, old_building_id, old_room_id,
			  new_building_id, new_room_id, moved_by, moved_by_username, reason, moved_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		binaryID(history.ID),
		binaryID(history.DeviceID),
		nullableBinaryID(history.OldBuildingID),
		nullableBinaryID(history.OldRoomID),
		binaryID(history.NewBuildingID),
		binaryID(history.NewRoomID),
		history.MovedBy,
		history.MovedByUsername,
		history.Reason,
		history.MovedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create location history")
	}
	return nil
}

// List returns move records newest first, optionally restricted to one device.
func (m *MySQLLocationHistoryRepository) List(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.LocationHistory, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, device_id, old_building_id, old_room_id, new_building_id, new_room_id,
			  moved_by, moved_by_username, reason, moved_at
			  FROM device_location_history`
	query, args := mysqlHistoryFilter(query, "moved_at", deviceID, offset, limit)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list location history")
	}
	defer func() {
		_ = rows.Close()
	}()

	histories := make([]*assetDomain.LocationHistory, 0)
	for rows.Next() {
		var history assetDomain.LocationHistory
		var rawID, rawDeviceID, rawOldBuildingID, rawOldRoomID, rawNewBuildingID, rawNewRoomID []byte
		if err := rows.Scan(
			&rawID,
			&rawDeviceID,
			&rawOldBuildingID,
			&rawOldRoomID,
			&rawNewBuildingID,
			&rawNewRoomID,
			&history.MovedBy,
			&history.MovedByUsername,
			&history.Reason,
			&history.MovedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan location history")
		}

		if history.ID, err = parseBinaryID(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal location history id")
		}
		if history.DeviceID, err = parseBinaryID(rawDeviceID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal device id")
		}
		if history.OldBuildingID, err = parseNullableBinaryID(rawOldBuildingID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal old building id")
		}
		if history.OldRoomID, err = parseNullableBinaryID(rawOldRoomID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal old room id")
		}
		if history.NewBuildingID, err = parseBinaryID(rawNewBuildingID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal new building id")
		}
		if history.NewRoomID, err = parseBinaryID(rawNewRoomID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal new room id")
		}
		histories = append(histories, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate location history")
	}

	return histories, nil
}

// NewMySQLLocationHistoryRepository creates a new MySQL LocationHistory repository.
func NewMySQLLocationHistoryRepository(db *sql.DB) *MySQLLocationHistoryRepository {
	return &MySQLLocationHistoryRepository{db: db}
}

// MySQLConditionHistoryRepository implements the append-only condition log for MySQL.
type MySQLConditionHistoryRepository struct {
	db *sql.DB
}

// Create appends a condition change record.
func (m *MySQLConditionHistoryRepository) Create(
	ctx context.Context,
	history *assetDomain.ConditionHistory,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO device_condition_history (id, device_id, old_condition, new_condition,
			  changed_by, changed_by_username, reason, changed_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		binaryID(history.ID),
		binaryID(history.DeviceID),
		nullCondition(history.OldCondition),
		string(history.NewCondition),
		history.ChangedBy,
		history.ChangedByUsername,
		history.Reason,
		history.ChangedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create condition history")
	}
	return nil
}

// List returns condition change records newest first, optionally restricted to one device.
func (m *MySQLConditionHistoryRepository) List(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.ConditionHistory, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, device_id, old_condition, new_condition, changed_by, changed_by_username,
			  reason, changed_at
			  FROM device_condition_history`
	query, args := mysqlHistoryFilter(query, "changed_at", deviceID, offset, limit)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list condition history")
	}
	defer func() {
		_ = rows.Close()
	}()

	histories := make([]*assetDomain.ConditionHistory, 0)
	for rows.Next() {
		var history assetDomain.ConditionHistory
		var rawID, rawDeviceID []byte
		var oldCondition sql.NullString
		if err := rows.Scan(
			&rawID,
			&rawDeviceID,
			&oldCondition,
			&history.NewCondition,
			&history.ChangedBy,
			&history.ChangedByUsername,
			&history.Reason,
			&history.ChangedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan condition history")
		}

		if history.ID, err = parseBinaryID(rawID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal condition history id")
		}
		if history.DeviceID, err = parseBinaryID(rawDeviceID); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal device id")
		}
		history.OldCondition = conditionPtr(oldCondition)
		histories = append(histories, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate condition history")
	}

	return histories, nil
}

// NewMySQLConditionHistoryRepository creates a new MySQL ConditionHistory repository.
func NewMySQLConditionHistoryRepository(db *sql.DB) *MySQLConditionHistoryRepository {
	return &MySQLConditionHistoryRepository{db: db}
}

// mysqlHistoryFilter appends the optional device filter, newest-first ordering and paging.
func mysqlHistoryFilter(
	query, timeColumn string,
	deviceID *uuid.UUID,
	offset, limit int,
) (string, []any) {
	args := make([]any, 0, 3)
	if deviceID != nil {
		args = append(args, binaryID(*deviceID))
		query += ` WHERE device_id = ?`
	}
	query += ` ORDER BY ` + timeColumn + ` DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return query, args
}
