package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/wayfarer/internal/models"
)

// API groups the typed endpoint surfaces of the backend.
type API struct {
	Itinerary *ItineraryAPI
	Auth      *AuthAPI
	User      *UserAPI
	AI        *AIAPI
	Maps      *MapsAPI
	Stats     *StatsAPI
}

// NewAPI creates the endpoint groups over a shared pipeline.
func NewAPI(p *Pipeline) *API {
	return &API{
		Itinerary: &ItineraryAPI{pipeline: p},
		Auth:      &AuthAPI{pipeline: p},
		User:      &UserAPI{pipeline: p},
		AI:        &AIAPI{pipeline: p},
		Maps:      &MapsAPI{pipeline: p},
		Stats:     &StatsAPI{pipeline: p},
	}
}

// decode unmarshals an envelope payload, reporting malformed payloads as
// transport failures.
func decode[T any](env *models.Envelope) (T, error) {
	out, err := models.DecodeData[T](env)
	if err != nil {
		var zero T
		return zero, &TransportError{Kind: TransportMalformed, Err: err}
	}
	return out, nil
}

// InitSession restores a persisted session at startup.
//
// When a token was persisted, the principal is fetched and populated before
// the session is treated as authenticated; any failure collapses the session
// back to unauthenticated (the pipeline's 401 handling clears credentials,
// other failures clear them here).
func InitSession(ctx context.Context, api *API, creds *CredentialStore) (models.Session, error) {
	session := creds.Current()
	if session.Token == "" {
		return session, nil
	}

	user, err := api.User.Me(ctx)
	if err != nil {
		if clearErr := creds.Clear(); clearErr != nil {
			return creds.Current(), fmt.Errorf("session init failed: %w", err)
		}
		return creds.Current(), err
	}

	creds.SetPrincipal(*user)
	return creds.Current(), nil
}
