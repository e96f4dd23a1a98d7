// Package models defines domain entities and wire types for the wayfarer itinerary client.
//
// The package contains three categories of types:
//
// 1. Wire envelope types: the uniform backend response wrapper
//   - [Envelope] : `{success, data, message, error, details}` around every response body
//   - [Page] : paginated collections nested under data
//
// 2. Itinerary domain types:
//   - [Itinerary] : a generated travel plan with status and progress
//   - [DailyItinerary] : per-day child records, populated once the parent completes
//   - [GenerationProgress] : the polling payload for an in-flight generation job
//   - [GenerationRequest] : parameters for requesting a new itinerary
//
// 3. Identity types:
//   - [User] and [UserProfile] : the authenticated principal and its extended profile
//   - [Session] : token + principal pair; authenticated only when both are present
//
// Ancillary request/response shapes for the AI, maps, and stats endpoint groups
// live in provider.go, maps.go, and stats.go.
package models
