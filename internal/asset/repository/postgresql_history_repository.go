package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
	"github.com/allisson/assettrack/internal/database"
	apperrors "github.com/allisson/assettrack/internal/errors"
)

// PostgreSQLLocationHistoryRepository implements the append-only move log for PostgreSQL.
type PostgreSQLLocationHistoryRepository struct {
	db *sql.DB
}

// Create appends a move record.
func (p *PostgreSQLLocationHistoryRepository) Create(
	ctx context.Context,
	history *assetDomain.LocationHistory,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO device_location_history (id, device_id, old_building_id, old_room_id,
			  new_building_id, new_room_id, moved_by, moved_by_username, reason, moved_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		history.ID,
		history.DeviceID,
		nullUUID(history.OldBuildingID),
		nullUUID(history.OldRoomID),
		history.NewBuildingID,
		history.NewRoomID,
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
func (p *PostgreSQLLocationHistoryRepository) List(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.LocationHistory, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, device_id, old_building_id, old_room_id, new_building_id, new_room_id,
			  moved_by, moved_by_username, reason, moved_at
			  FROM device_location_history`
	query, args := postgresHistoryFilter(query, "moved_at", deviceID, offset, limit)

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
		var oldBuildingID, oldRoomID uuid.NullUUID
		if err := rows.Scan(
			&history.ID,
			&history.DeviceID,
			&oldBuildingID,
			&oldRoomID,
			&history.NewBuildingID,
			&history.NewRoomID,
			&history.MovedBy,
			&history.MovedByUsername,
			&history.Reason,
			&history.MovedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan location history")
		}
		history.OldBuildingID = uuidPtr(oldBuildingID)
		history.OldRoomID = uuidPtr(oldRoomID)
		histories = append(histories, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate location history")
	}

	return histories, nil
}

// NewPostgreSQLLocationHistoryRepository creates a new PostgreSQL LocationHistory repository.
func NewPostgreSQLLocationHistoryRepository(db *sql.DB) *PostgreSQLLocationHistoryRepository {
	return &PostgreSQLLocationHistoryRepository{db: db}
}

// PostgreSQLConditionHistoryRepository implements the append-only condition log for PostgreSQL.
type PostgreSQLConditionHistoryRepository struct {
	db *sql.DB
}

// Create appends a condition change record.
func (p *PostgreSQLConditionHistoryRepository) Create(
	ctx context.Context,
	history *assetDomain.ConditionHistory,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO device_condition_history (id, device_id, old_condition, new_condition,
			  changed_by, changed_by_username, reason, changed_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		history.ID,
		history.DeviceID,
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
func (p *PostgreSQLConditionHistoryRepository) List(
	ctx context.Context,
	deviceID *uuid.UUID,
	offset, limit int,
) ([]*assetDomain.ConditionHistory, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, device_id, old_condition, new_condition, changed_by, changed_by_username,
			  reason, changed_at
			  FROM device_condition_history`
	query, args := postgresHistoryFilter(query, "changed_at", deviceID, offset, limit)

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
		var oldCondition sql.NullString
		if err := rows.Scan(
			&history.ID,
			&history.DeviceID,
			&oldCondition,
			&history.NewCondition,
			&history.ChangedBy,
			&history.ChangedByUsername,
			&history.Reason,
			&history.ChangedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan condition history")
		}
		history.OldCondition = conditionPtr(oldCondition)
		histories = append(histories, &history)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate condition history")
	}

	return histories, nil
}

// NewPostgreSQLConditionHistoryRepository creates a new PostgreSQL ConditionHistory repository.
func NewPostgreSQLConditionHistoryRepository(db *sql.DB) *PostgreSQLConditionHistoryRepository {
	return &PostgreSQLConditionHistoryRepository{db: db}
}

// postgresHistoryFilter appends the optional device filter, newest-first ordering and paging.
func postgresHistoryFilter(
	query, timeColumn string,
	deviceID *uuid.UUID,
	offset, limit int,
) (string, []any) {
	args := make([]any, 0, 3)
	if deviceID != nil {
		args = append(args, *deviceID)
		query += ` WHERE device_id = $1`
	}
	query += fmt.Sprintf(
		` ORDER BY %s DESC, id DESC LIMIT $%d OFFSET $%d`,
		timeColumn,
		len(args)+1,
		len(args)+2,
	)
	args = append(args, limit, offset)
	return query, args
}
