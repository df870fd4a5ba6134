// Package session holds the process-wide authentication session: the bearer
// token, the display identity of the signed-in user, and whether the durable
// token slot has been read yet.
//
// A Store is created once at start-up and handed to everything that needs it.
// The token is written through to a Storage (key "token") on every change;
// the identity lives in memory only.
//
// Lifecycle:
//
//	NewStore            -> NotLoaded
//	LoadPersisted       -> LoadedWithToken | LoadedWithoutToken (runs once)
//	SetToken / Clear    -> state follows token presence
//
// Change listeners registered with OnChange observe every effective
// mutation, which is how front ends notice that a 401 signed the user out.
package session
