// Package main provides the entry point for trailguard-cli.
//
// trailguard-cli talks to the TrailGuard backend on behalf of one user:
//
//   - Account sign-in, registration and sign-out
//   - Rescue requests and their status
//   - Teams, expeditions and their message boards
//   - Subscription plans and billing
//   - Local configuration and diagnostics
//
// Usage:
//
//	trailguard-cli login --email ana@trailguard.app
//	trailguard-cli -o json expedition list --difficulty expert
//	trailguard-cli shell
//
// The session token is stored under ~/.trailguard and reused by later
// invocations until logout or until the server rejects it.
package main
