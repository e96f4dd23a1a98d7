// Package services implements the HTTP client stack for the wayfarer backend.
//
// The stack has three layers, leaves first:
//
//  1. [Client] — raw transport: issues HTTP calls against the backend base URL,
//     serializes JSON bodies, applies the client-side rate limit, and returns
//     untyped [Response] values. No business logic.
//  2. [CredentialStore] — owns the session token and principal, persists the
//     token to disk, and injects it as a bearer credential on outgoing requests.
//  3. [Pipeline] — wraps every Client call with credential injection and
//     busy-indicator signaling before the call, and a deterministic error
//     taxonomy after it: TransportError (network / malformed / status),
//     AuthError (unauthenticated / forbidden), BusinessError, or a decoded
//     envelope on success. A 401 destroys the session and notifies the
//     redirect collaborator; it is never silently retried.
//
// The typed endpoint groups ([ItineraryAPI], [AuthAPI], [UserAPI], [AIAPI],
// [MapsAPI], [StatsAPI]) sit on top of the pipeline and decode envelope
// payloads into model types.
package services
