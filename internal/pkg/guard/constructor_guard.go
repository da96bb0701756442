// Package guard holds the constructor guard embedded by value objects,
// commands and queries to tell constructed values from zero values.
//
// Go has no private constructors, so any exported struct can be declared as a
// zero value and passed around. Types that carry invariants embed a
// ConstructorGuard, set it in their constructor and check it in Validate.
// Handlers call Validate on every command or query before touching storage.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs that must only be created through
// their constructor. The zero value reports "not constructed".
//
// The guard holds a single flag and is copied by value together with the
// struct that embeds it. It is safe for concurrent reads.
//
// Example:
//
//	var ErrAssignWorkerCommandIsNotConstructed = errs.NewValueIsRequiredError(
//	    "AssignWorkerCommand must be created via NewAssignWorkerCommand")
//
//	type AssignWorkerCommand struct {
//	    requestID kernel.UUID
//	    workerID  kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewAssignWorkerCommand(requestID, workerID kernel.UUID) (AssignWorkerCommand, error) {
//	    // validate arguments ...
//	    return AssignWorkerCommand{requestID: requestID, workerID: workerID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c AssignWorkerCommand) Validate() error {
//	    return c.guard.Validate(ErrAssignWorkerCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
// Call it only from the constructor of the embedding type, after every
// argument has been validated.
//
// Returns:
//   - ConstructorGuard: a guard whose Validate always returns nil
//
// Example:
//
//	q := GetWorkerPickupsQuery{
//	    workerID: workerID,
//	    guard:    guard.NewConstructorGuard(),
//	}
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the embedding value came from its constructor.
//
// Parameters:
//   - validationError: the error to return for a zero value; nil selects
//     ErrDefaultConstructorGuard
//
// Returns:
//   - nil if the guard was created by NewConstructorGuard
//   - validationError if the guard is a zero value
//   - ErrDefaultConstructorGuard if the guard is a zero value and validationError is nil
//
// Example:
//
//	func (q GetWorkerPickupsQuery) Validate() error {
//	    if err := q.guard.Validate(ErrGetWorkerPickupsQueryIsNotConstructed); err != nil {
//	        return err
//	    }
//	    return q.workerID.Validate()
//	}
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
