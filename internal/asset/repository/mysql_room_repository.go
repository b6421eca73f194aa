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

// MySQLRoomRepository implements Room lookups for MySQL databases.
type MySQLRoomRepository struct {
	db *sql.DB
}

// Get retrieves a room by id.
func (m *MySQLRoomRepository) Get(ctx context.Context, id uuid.UUID) (*assetDomain.Room, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, building_id, name FROM rooms WHERE id = ?`

	var room assetDomain.Room
	var rawID, rawBuildingID []byte
	err := querier.QueryRowContext(ctx, query, binaryID(id)).Scan(&rawID, &rawBuildingID, &room.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assetDomain.ErrRoomNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get room")
	}

	if room.ID, err = parseBinaryID(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal room id")
	}
	if room.BuildingID, err = parseBinaryID(rawBuildingID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal building id")
	}

	return &room, nil
}

// NewMySQLRoomRepository creates a new MySQL Room repository.
func NewMySQLRoomRepository(db *sql.DB) *MySQLRoomRepository {
	return &MySQLRoomRepository{db: db}
}

// MySQLResponsiblePersonRepository implements ResponsiblePerson lookups for MySQL databases.
type MySQLResponsiblePersonRepository struct {
	db *sql.DB
}

// Get retrieves a responsible person by id.
func (m *MySQLResponsiblePersonRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*assetDomain.ResponsiblePerson, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, building_id, room_id, user_id, position FROM responsible_persons WHERE id = ?`

	var person assetDomain.ResponsiblePerson
	var rawID, rawBuildingID, rawRoomID []byte
	err := querier.QueryRowContext(ctx, query, binaryID(id)).Scan(
		&rawID,
		&rawBuildingID,
		&rawRoomID,
		&person.UserID,
		&person.Position,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assetDomain.ErrResponsiblePersonNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get responsible person")
	}

	if person.ID, err = parseBinaryID(rawID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal responsible person id")
	}
	if person.BuildingID, err = parseBinaryID(rawBuildingID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal building id")
	}
	if person.RoomID, err = parseNullableBinaryID(rawRoomID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal room id")
	}

	return &person, nil
}

// NewMySQLResponsiblePersonRepository creates a new MySQL ResponsiblePerson repository.
func NewMySQLResponsiblePersonRepository(db *sql.DB) *MySQLResponsiblePersonRepository {
	return &MySQLResponsiblePersonRepository{db: db}
}
