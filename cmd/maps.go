package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/shared"
	"github.com/urfave/cli/v3"
)

// MapsGeocode resolves an address to coordinates.
func (r *Runner) MapsGeocode(ctx context.Context, cmd *cli.Command) error {
	address := cmd.StringArg("address")
	if address == "" {
		return fmt.Errorf("%w: address", shared.ErrMissingArgument)
	}

	location, err := r.api.Maps.Geocode(ctx, address)
	if err != nil {
		return err
	}

	r.writePlain("%.6f, %.6f\n", location.Latitude, location.Longitude)
	if location.FormattedAddress != "" {
		r.writePlain("%s\n", location.FormattedAddress)
	}
	return nil
}

// MapsReverse resolves coordinates to an address.
func (r *Runner) MapsReverse(ctx context.Context, cmd *cli.Command) error {
	result, err := r.api.Maps.ReverseGeocode(ctx, cmd.Float("lat"), cmd.Float("lng"))
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", result.FormattedAddress)
}

// MapsPlaces searches for places.
func (r *Runner) MapsPlaces(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	result, err := r.api.Maps.SearchPlaces(ctx, models.PlaceSearchRequest{
		Query:    query,
		Region:   cmd.String("region"),
		PageNum:  1,
		PageSize: cmd.Int("page-size"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	if len(result.Places) == 0 {
		return r.writePlain("No places found for '%s'\n", query)
	}

	r.writePlain("Found %d place(s):\n", result.Total)
	for i, place := range result.Places {
		r.writePlain("%2d. %s — %s\n", i+1, place.Name, place.Address)
	}
	return nil
}

// MapsDirections plans a route between two points.
func (r *Runner) MapsDirections(ctx context.Context, cmd *cli.Command) error {
	result, err := r.api.Maps.Directions(ctx, models.DirectionsRequest{
		Origin:      cmd.String("origin"),
		Destination: cmd.String("destination"),
		Mode:        cmd.String("mode"),
	})
	if err != nil {
		return err
	}

	r.writePlain("%s → %s (%s)\n", result.Origin, result.Destination, result.Mode)
	r.writePlain("Distance: %.1f km\n", result.Distance/1000)
	r.writePlain("Duration: %.0f min\n", result.Duration/60)
	return nil
}

// MapsWeather shows current conditions and the short-range forecast.
func (r *Runner) MapsWeather(ctx context.Context, cmd *cli.Command) error {
	location := cmd.StringArg("location")
	if location == "" {
		return fmt.Errorf("%w: location", shared.ErrMissingArgument)
	}

	weather, err := r.api.Maps.Weather(ctx, location)
	if err != nil {
		return err
	}

	r.writePlain("%s: %s %s°\n", weather.Location, weather.Current.Text, weather.Current.Temperature)
	for _, day := range weather.Forecast {
		r.writePlain("  %s: %s (%s° – %s°)\n", day.Date, day.Text, day.Low, day.High)
	}
	return nil
}

// MapsIP locates the caller from its IP.
func (r *Runner) MapsIP(ctx context.Context, cmd *cli.Command) error {
	location, err := r.api.Maps.IPLocation(ctx)
	if err != nil {
		return err
	}

	r.writePlain("%s → %.4f, %.4f\n", location.IP, location.Location.Latitude, location.Location.Longitude)
	if location.Location.Address != "" {
		r.writePlain("%s\n", location.Location.Address)
	}
	return nil
}
