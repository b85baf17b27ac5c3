package dtos

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/srhoton/srnext-bff/internal/services"
	"github.com/srhoton/srnext-bff/internal/utils"
)

// Parts return the backend shape unchanged. The input side differs: the
// GraphQL schema carries timestamps as strings and the specifications and
// extendedAttributes sub-documents as serialized JSON.

type PartCreateInput struct {
	PartNumber         string               `json:"partNumber" validate:"required"`
	Description        string               `json:"description" validate:"required"`
	Manufacturer       string               `json:"manufacturer" validate:"required"`
	Category           string               `json:"category" validate:"required"`
	Subcategory        *string              `json:"subcategory,omitempty"`
	UnitID             *string              `json:"unitId,omitempty"`
	LocationID         *string              `json:"locationId,omitempty"`
	Condition          string               `json:"condition" validate:"required"`
	Status             string               `json:"status" validate:"required"`
	Quantity           int                  `json:"quantity" validate:"gte=0"`
	SerialNumber       *string              `json:"serialNumber,omitempty"`
	BatchNumber        *string              `json:"batchNumber,omitempty"`
	InstallDate        *string              `json:"installDate,omitempty"`
	PurchaseDate       *string              `json:"purchaseDate,omitempty"`
	WarrantyExpiration *string              `json:"warrantyExpiration,omitempty"`
	Vendor             *string              `json:"vendor,omitempty"`
	Weight             *float64             `json:"weight,omitempty"`
	Dimensions         *services.Dimensions `json:"dimensions,omitempty"`
	Specifications     *string              `json:"specifications,omitempty"`
	ExtendedAttributes *string              `json:"extendedAttributes,omitempty"`
	Tags               []string             `json:"tags,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
}

type PartUpdateInput struct {
	PartNumber         *string              `json:"partNumber,omitempty"`
	Description        *string              `json:"description,omitempty"`
	Manufacturer       *string              `json:"manufacturer,omitempty"`
	Category           *string              `json:"category,omitempty"`
	Subcategory        *string              `json:"subcategory,omitempty"`
	UnitID             *string              `json:"unitId,omitempty"`
	LocationID         *string              `json:"locationId,omitempty"`
	Condition          *string              `json:"condition,omitempty"`
	Status             *string              `json:"status,omitempty"`
	Quantity           *int                 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	SerialNumber       *string              `json:"serialNumber,omitempty"`
	BatchNumber        *string              `json:"batchNumber,omitempty"`
	InstallDate        *string              `json:"installDate,omitempty"`
	PurchaseDate       *string              `json:"purchaseDate,omitempty"`
	WarrantyExpiration *string              `json:"warrantyExpiration,omitempty"`
	Vendor             *string              `json:"vendor,omitempty"`
	Weight             *float64             `json:"weight,omitempty"`
	Dimensions         *services.Dimensions `json:"dimensions,omitempty"`
	Specifications     *string              `json:"specifications,omitempty"`
	ExtendedAttributes *string              `json:"extendedAttributes,omitempty"`
	Tags               []string             `json:"tags,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
}

type PartListResponse struct {
	Items      []services.Part `json:"items"`
	NextCursor *string         `json:"nextCursor,omitempty"`
	Limit      int             `json:"limit"`
	Count      int             `json:"count"`
}

// parseJSONMap parses a serialized JSON sub-document leniently: a malformed
// value is dropped with a warning rather than failing the whole mutation.
func parseJSONMap[T any](value *string) *T {
	if value == nil || *value == "" {
		return nil
	}
	var out T
	if err := json.Unmarshal([]byte(*value), &out); err != nil {
		utils.Logger.WithField("value", *value).Warn("Failed to parse JSON")
		return nil
	}
	return &out
}

func (in PartCreateInput) ToBackend(partID, sortKey string) services.PartCreate {
	create := services.PartCreate{
		PartID:       partID,
		SortKey:      sortKey,
		PartNumber:   in.PartNumber,
		Description:  in.Description,
		Manufacturer: in.Manufacturer,
		Category:     in.Category,
		Subcategory:  in.Subcategory,
		UnitID:       in.UnitID,
		LocationID:   in.LocationID,
		Condition:    in.Condition,
		Status:       in.Status,
		Quantity:     in.Quantity,
		SerialNumber: in.SerialNumber,
		BatchNumber:  in.BatchNumber,
		InstallDate:  EpochStringToSeconds(in.InstallDate),
		PurchaseDate: EpochStringToSeconds(in.PurchaseDate),
		Vendor:       in.Vendor,
		Weight:       in.Weight,
		Dimensions:   in.Dimensions,
		Tags:         in.Tags,
		Notes:        in.Notes,
	}
	create.WarrantyExpiration = EpochStringToSeconds(in.WarrantyExpiration)
	if specs := parseJSONMap[map[string]string](in.Specifications); specs != nil {
		create.Specifications = *specs
	}
	if attrs := parseJSONMap[map[string]any](in.ExtendedAttributes); attrs != nil {
		create.ExtendedAttributes = *attrs
	}
	return create
}

func (in PartUpdateInput) ToBackend() services.PartUpdate {
	update := services.PartUpdate{
		PartNumber:         in.PartNumber,
		Description:        in.Description,
		Manufacturer:       in.Manufacturer,
		Category:           in.Category,
		Subcategory:        in.Subcategory,
		UnitID:             in.UnitID,
		LocationID:         in.LocationID,
		Condition:          in.Condition,
		Status:             in.Status,
		Quantity:           in.Quantity,
		SerialNumber:       in.SerialNumber,
		BatchNumber:        in.BatchNumber,
		InstallDate:        EpochStringToSeconds(in.InstallDate),
		PurchaseDate:       EpochStringToSeconds(in.PurchaseDate),
		WarrantyExpiration: EpochStringToSeconds(in.WarrantyExpiration),
		Vendor:             in.Vendor,
		Weight:             in.Weight,
		Dimensions:         in.Dimensions,
		Tags:               in.Tags,
		Notes:              in.Notes,
	}
	if specs := parseJSONMap[map[string]string](in.Specifications); specs != nil {
		update.Specifications = *specs
	}
	if attrs := parseJSONMap[map[string]any](in.ExtendedAttributes); attrs != nil {
		update.ExtendedAttributes = *attrs
	}
	return update
}

// GeneratePartSortKey builds the composite storage key. Location wins when
// both parents are set; at least one is required.
func GeneratePartSortKey(locationID, unitID *string, partID string) (string, error) {
	if partID == "" {
		partID = uuid.NewString()
	}
	switch {
	case locationID != nil && *locationID != "":
		return fmt.Sprintf("location#%s#%s", *locationID, partID), nil
	case unitID != nil && *unitID != "":
		return fmt.Sprintf("unit#%s#%s", *unitID, partID), nil
	default:
		return "", utils.Validation("Either locationId or unitId must be provided")
	}
}

// ExtractPartIDFromSortKey returns the third segment of a composite key.
func ExtractPartIDFromSortKey(sortKey string) (string, error) {
	parts := strings.Split(sortKey, "#")
	if len(parts) != 3 {
		return "", utils.Validation("Invalid sortKey format")
	}
	return parts[2], nil
}
