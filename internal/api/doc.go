// Package api is the single egress point to the TrailGuard backend.
//
// Every call goes through one resty client configured with two hooks:
//
//   - before the request leaves, the session token is read once and, when
//     present, sent as "Authorization: Bearer <token>"; every request also
//     carries a fresh ULID in X-Request-ID
//   - after a response arrives, it runs through the response stage pipeline
//     and then a status check, which runs even when a stage failed; it turns
//     non-2xx statuses into errors and, for 401, clears the session before
//     *AuthExpiredError reaches the caller
//
// Errors are typed: *NetworkError, *TimeoutError, *ServerError and
// *AuthExpiredError (which unwraps to the *ServerError). Argument problems
// detected before sending are domain errors (domain.ErrInvalidArgument,
// domain.ErrMissingArgument). Nothing is retried.
//
// Resource methods mirror the backend routes one to one:
//
//	auth.go           Login, Register
//	users.go          Me
//	rescue.go         MyRescues, AllRescues, RequestRescue, UpdateRescueStatus
//	teams.go          Teams, Team, CreateTeam, UpdateTeam, JoinTeam, LeaveTeam, ...
//	expeditions.go    Expeditions, Expedition, CreateExpedition, ...
//	subscriptions.go  Plans, CurrentSubscription, CreateSubscription, ...
package api
