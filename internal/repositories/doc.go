// package repositories provides the local sqlite cache of itineraries
// fetched from the backend.
//
// The cache survives restarts so list and show commands can render offline
// or while the backend is unreachable. Rows keep the server-assigned ids;
// the backend stays authoritative and a fresh fetch replaces whatever is
// cached.
package repositories
