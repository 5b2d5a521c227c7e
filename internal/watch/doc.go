// Package watch re-runs a callback whenever a skill directory changes. Bursts
// of filesystem events are coalesced into one call after a quiet period.
package watch
