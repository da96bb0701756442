// Package worker contains the Worker entity: a field collector who can be
// assigned pickup requests.
package worker
