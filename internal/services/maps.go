package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/wayfarer/internal/models"
)

// MapsAPI covers the geographic surface proxied by the backend: geocoding,
// place search, routing, weather, and IP location.
type MapsAPI struct {
	pipeline *Pipeline
}

// Geocode resolves an address to a point.
func (a *MapsAPI) Geocode(ctx context.Context, address string) (*models.Location, error) {
	path := "/v1/maps/geocode?address=" + url.QueryEscape(address)
	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	location, err := decode[models.Location](env)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// ReverseGeocode resolves a point to an address.
func (a *MapsAPI) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.ReverseGeocodeResult, error) {
	path := fmt.Sprintf("/v1/maps/reverse-geocode?latitude=%f&longitude=%f", lat, lng)
	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	result, err := decode[models.ReverseGeocodeResult](env)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchPlaces queries place search.
func (a *MapsAPI) SearchPlaces(ctx context.Context, req models.PlaceSearchRequest) (*models.PlaceSearchResult, error) {
	env, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/maps/places/search", req, CallOpts{})
	if err != nil {
		return nil, err
	}

	result, err := decode[models.PlaceSearchResult](env)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PlaceDetails fetches a single place by its provider UID.
func (a *MapsAPI) PlaceDetails(ctx context.Context, uid string) (*models.PlaceInfo, error) {
	path := "/v1/maps/places/" + url.PathEscape(uid)
	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	place, err := decode[models.PlaceInfo](env)
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// Directions plans a route between two points.
func (a *MapsAPI) Directions(ctx context.Context, req models.DirectionsRequest) (*models.DirectionsResult, error) {
	env, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/maps/directions", req, CallOpts{})
	if err != nil {
		return nil, err
	}

	result, err := decode[models.DirectionsResult](env)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DistanceMatrix batches travel times between origin and destination sets.
func (a *MapsAPI) DistanceMatrix(ctx context.Context, origins, destinations []string, mode string) (*models.DistanceMatrix, error) {
	payload := map[string]any{
		"origins":      origins,
		"destinations": destinations,
		"mode":         mode,
	}
	env, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/maps/distance-matrix", payload, CallOpts{})
	if err != nil {
		return nil, err
	}

	matrix, err := decode[models.DistanceMatrix](env)
	if err != nil {
		return nil, err
	}
	return &matrix, nil
}

// Weather fetches current conditions and the short-range forecast.
func (a *MapsAPI) Weather(ctx context.Context, location string) (*models.WeatherInfo, error) {
	path := "/v1/maps/weather?location=" + url.QueryEscape(location)
	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	weather, err := decode[models.WeatherInfo](env)
	if err != nil {
		return nil, err
	}
	return &weather, nil
}

// IPLocation resolves the caller's approximate location from its IP.
func (a *MapsAPI) IPLocation(ctx context.Context) (*models.IPLocation, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/maps/ip-location", nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	location, err := decode[models.IPLocation](env)
	if err != nil {
		return nil, err
	}
	return &location, nil
}
