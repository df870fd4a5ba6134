// Package domain defines the core domain models for the TrailGuard client.
//
// Domain models are plain value types mirroring the JSON payloads of the
// TrailGuard backend, without any IO dependencies. This package contains:
//
//   - User and LoginResponse: identity returned by the auth endpoints
//   - Rescue: rescue requests filed from the field
//   - Team, TeamMember: teams and their membership
//   - Expedition, ExpeditionMember, RoutePoint: planned trips
//   - Message: team and expedition chat messages
//   - Subscription, SubscriptionPlan: paywall state
//   - Errors: client-side validation error codes
//
// Optional payload fields are pointers. A field the backend omits and a
// field it sends as an explicit null both decode to nil.
package domain
