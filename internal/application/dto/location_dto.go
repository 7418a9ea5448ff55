package dto

import "time"

// CreateLocationStructureRequest define la codificación de ubicaciones de una bodega.
type CreateLocationStructureRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Prefix1     string `json:"prefix1"`
	Prefix2     string `json:"prefix2"`
	Prefix3     string `json:"prefix3"`
	Separator   string `json:"separator"`
	MaxSegment1 int    `json:"max_segment1"`
	MaxSegment2 int    `json:"max_segment2"`
	MaxSegment3 int    `json:"max_segment3"`
}

// UpdateLocationStructureRequest permite ampliar los máximos; prefijos y
// separador solo se aceptan mientras no existan ubicaciones generadas.
type UpdateLocationStructureRequest struct {
	Prefix1     *string `json:"prefix1"`
	Prefix2     *string `json:"prefix2"`
	Prefix3     *string `json:"prefix3"`
	Separator   *string `json:"separator"`
	MaxSegment1 *int    `json:"max_segment1"`
	MaxSegment2 *int    `json:"max_segment2"`
	MaxSegment3 *int    `json:"max_segment3"`
}

// LocationStructureResponse respuesta de estructura.
type LocationStructureResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Prefix1     string    `json:"prefix1"`
	Prefix2     string    `json:"prefix2"`
	Prefix3     string    `json:"prefix3"`
	Separator   string    `json:"separator"`
	MaxSegment1 int       `json:"max_segment1"`
	MaxSegment2 int       `json:"max_segment2"`
	MaxSegment3 int       `json:"max_segment3"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenerateLocationsRequest cuántos valores enumerar por segmento.
type GenerateLocationsRequest struct {
	Count1   int  `json:"count1"`
	Count2   int  `json:"count2"`
	Count3   int  `json:"count3"`
	Capacity *int `json:"capacity"`
}

// GenerateLocationsResponse resultado de la generación masiva.
type GenerateLocationsResponse struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
	Skipped   int `json:"skipped"`
}

// ValidateCodeRequest código crudo a validar contra la estructura de la bodega.
type ValidateCodeRequest struct {
	Code string `json:"code" query:"code"`
}

// CodeValidationResponse resultado tipado de la validación: nunca es un error
// de transporte, también se usa para feedback de UI.
type CodeValidationResponse struct {
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"` // INVALID_FORMAT | OUT_OF_RANGE | UNKNOWN_STRUCTURE
	Segment1 int    `json:"segment1,omitempty"`
	Segment2 int    `json:"segment2,omitempty"`
	Segment3 int    `json:"segment3,omitempty"`
}

// AdjustOccupancyRequest delta de ocupación (positivo o negativo).
type AdjustOccupancyRequest struct {
	Delta int `json:"delta"`
}

// LocationResponse respuesta de ubicación.
type LocationResponse struct {
	ID               string     `json:"id"`
	WarehouseID      string     `json:"warehouse_id"`
	Code             string     `json:"code"`
	Segment1         int        `json:"segment1"`
	Segment2         int        `json:"segment2"`
	Segment3         int        `json:"segment3"`
	Status           string     `json:"status"`
	Capacity         *int       `json:"capacity,omitempty"`
	CurrentOccupancy int        `json:"current_occupancy"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
