package models

import (
	"encoding/json"
	"fmt"
)

// Envelope is the uniform wrapper around every backend response body.
//
// Success distinguishes business-level failure from transport-level outcomes;
// Data is left raw for the caller to decode into the endpoint's payload type.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Details string          `json:"details,omitempty"`
}

// Page is the pagination wrapper nested under data for list endpoints.
type Page[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Pages    int `json:"pages"`
}

// ItineraryPage is a page of itinerary list entries in server order.
type ItineraryPage = Page[Itinerary]

// DecodeData unmarshals an envelope's data payload into T.
func DecodeData[T any](env *Envelope) (T, error) {
	var out T
	if env == nil {
		return out, fmt.Errorf("nil envelope")
	}
	if len(env.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("failed to decode payload: %w", err)
	}
	return out, nil
}
