// Package repository implements asset persistence for PostgreSQL and MySQL. Every repository
// resolves its querier through database.GetTx so it joins the caller's transaction when one
// is active.
package repository

import (
	"database/sql"

	"github.com/google/uuid"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
)

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	value := id.UUID
	return &value
}

func nullCondition(condition *assetDomain.Condition) sql.NullString {
	if condition == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*condition), Valid: true}
}

func conditionPtr(condition sql.NullString) *assetDomain.Condition {
	if !condition.Valid {
		return nil
	}
	value := assetDomain.Condition(condition.String)
	return &value
}

// binaryID encodes id for BINARY(16) columns.
func binaryID(id uuid.UUID) []byte {
	return id[:]
}

// nullableBinaryID encodes id for nullable BINARY(16) columns.
func nullableBinaryID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return binaryID(*id)
}

// parseBinaryID decodes a BINARY(16) column.
func parseBinaryID(raw []byte) (uuid.UUID, error) {
	var id uuid.UUID
	if err := id.UnmarshalBinary(raw); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// parseNullableBinaryID decodes a nullable BINARY(16) column.
func parseNullableBinaryID(raw []byte) (*uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	id, err := parseBinaryID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
