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

// PostgreSQLRoomRepository implements Room lookups for PostgreSQL databases.
type PostgreSQLRoomRepository struct {
	db *sql.DB
}

// Get retrieves a room by id.
func (p *PostgreSQLRoomRepository) Get(ctx context.Context, id uuid.UUID) (*assetDomain.Room, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, building_id, name FROM rooms WHERE id = $1`

	var room assetDomain.Room
	err := querier.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.BuildingID, &room.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assetDomain.ErrRoomNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get room")
	}

	return &room, nil
}

// NewPostgreSQLRoomRepository creates a new PostgreSQL Room repository.
func NewPostgreSQLRoomRepository(db *sql.DB) *PostgreSQLRoomRepository {
	return &PostgreSQLRoomRepository{db: db}
}

// PostgreSQLResponsiblePersonRepository implements ResponsiblePerson lookups for PostgreSQL databases.
type PostgreSQLResponsiblePersonRepository struct {
	db *sql.DB
}

// Get retrieves a responsible person by id.
func (p *PostgreSQLResponsiblePersonRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*assetDomain.ResponsiblePerson, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, building_id, room_id, user_id, position FROM responsible_persons WHERE id = $1`

	var person assetDomain.ResponsiblePerson
	var roomID uuid.NullUUID
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&person.ID,
		&person.BuildingID,
		&roomID,
		&person.UserID,
		&person.Position,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, assetDomain.ErrResponsiblePersonNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get responsible person")
	}
	person.RoomID = uuidPtr(roomID)

	return &person, nil
}

// NewPostgreSQLResponsiblePersonRepository creates a new PostgreSQL ResponsiblePerson repository.
func NewPostgreSQLResponsiblePersonRepository(db *sql.DB) *PostgreSQLResponsiblePersonRepository {
	return &PostgreSQLResponsiblePersonRepository{db: db}
}
