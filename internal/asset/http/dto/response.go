package dto

import (
	"time"

	"github.com/google/uuid"

	assetDomain "github.com/allisson/assettrack/internal/asset/domain"
)

// LocationResponse represents the current location of a device in API responses.
type LocationResponse struct {
	ID                string    `json:"id"`
	Device            string    `json:"device"`
	Room              string    `json:"room"`
	Building          string    `json:"building"`
	ResponsiblePerson *string   `json:"responsible_person"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	CreatedBy         string    `json:"created_by"`
	UpdatedBy         string    `json:"updated_by"`
}

// LocationHistoryResponse represents one recorded move in API responses.
type LocationHistoryResponse struct {
	ID              string    `json:"id"`
	Device          string    `json:"device"`
	OldBuilding     *string   `json:"old_building"`
	OldRoom         *string   `json:"old_room"`
	NewBuilding     string    `json:"new_building"`
	NewRoom         string    `json:"new_room"`
	MovedBy         string    `json:"moved_by"`
	MovedByUsername string    `json:"moved_by_username"`
	Reason          string    `json:"reason"`
	MovedAt         time.Time `json:"moved_at"`
}

// ConditionHistoryResponse represents one recorded condition change in API responses.
type ConditionHistoryResponse struct {
	ID                string    `json:"id"`
	Device            string    `json:"device"`
	OldCondition      *string   `json:"old_condition"`
	NewCondition      string    `json:"new_condition"`
	ChangedBy         string    `json:"changed_by"`
	ChangedByUsername string    `json:"changed_by_username"`
	Reason            string    `json:"reason"`
	ChangedAt         time.Time `json:"changed_at"`
}

// ListLocationHistoryResponse represents a paginated list of moves.
type ListLocationHistoryResponse struct {
	Data []LocationHistoryResponse `json:"data"`
}

// ListConditionHistoryResponse represents a paginated list of condition changes.
type ListConditionHistoryResponse struct {
	Data []ConditionHistoryResponse `json:"data"`
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}

// MapLocationToResponse converts a domain location to an API response.
func MapLocationToResponse(location *assetDomain.Location) LocationResponse {
	return LocationResponse{
		ID:                location.ID.String(),
		Device:            location.DeviceID.String(),
		Room:              location.RoomID.String(),
		Building:          location.BuildingID.String(),
		ResponsiblePerson: optionalID(location.ResponsiblePersonID),
		CreatedAt:         location.CreatedAt,
		UpdatedAt:         location.UpdatedAt,
		CreatedBy:         location.CreatedBy,
		UpdatedBy:         location.UpdatedBy,
	}
}

// MapLocationHistoryToResponse converts a domain move record to an API response.
func MapLocationHistoryToResponse(history *assetDomain.LocationHistory) LocationHistoryResponse {
	return LocationHistoryResponse{
		ID:              history.ID.String(),
		Device:          history.DeviceID.String(),
		OldBuilding:     optionalID(history.OldBuildingID),
		OldRoom:         optionalID(history.OldRoomID),
		NewBuilding:     history.NewBuildingID.String(),
		NewRoom:         history.NewRoomID.String(),
		MovedBy:         history.MovedBy,
		MovedByUsername: history.MovedByUsername,
		Reason:          history.Reason,
		MovedAt:         history.MovedAt,
	}
}

// MapConditionHistoryToResponse converts a domain condition change to an API response.
func MapConditionHistoryToResponse(history *assetDomain.ConditionHistory) ConditionHistoryResponse {
	response := ConditionHistoryResponse{
		ID:                history.ID.String(),
		Device:            history.DeviceID.String(),
		NewCondition:      string(history.NewCondition),
		ChangedBy:         history.ChangedBy,
		ChangedByUsername: history.ChangedByUsername,
		Reason:            history.Reason,
		ChangedAt:         history.ChangedAt,
	}
	if history.OldCondition != nil {
		oldCondition := string(*history.OldCondition)
		response.OldCondition = &oldCondition
	}
	return response
}

// MapLocationHistoriesToListResponse converts domain move records to a list response.
func MapLocationHistoriesToListResponse(histories []*assetDomain.LocationHistory) ListLocationHistoryResponse {
	data := make([]LocationHistoryResponse, 0, len(histories))
	for _, history := range histories {
		data = append(data, MapLocationHistoryToResponse(history))
	}
	return ListLocationHistoryResponse{Data: data}
}

// MapConditionHistoriesToListResponse converts domain condition changes to a list response.
func MapConditionHistoriesToListResponse(
	histories []*assetDomain.ConditionHistory,
) ListConditionHistoryResponse {
	data := make([]ConditionHistoryResponse, 0, len(histories))
	for _, history := range histories {
		data = append(data, MapConditionHistoryToResponse(history))
	}
	return ListConditionHistoryResponse{Data: data}
}
