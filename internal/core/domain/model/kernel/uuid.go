package kernel

import (
	"fmt"

	"ewaste/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when a zero UUID is used as an identifier.
// It wraps errs.ErrValueIsRequired, so callers may match either error.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies pickup requests, workers and log entries.
// It wraps github.com/google/uuid and is compared by value.
//
// The zero value (the nil UUID) is invalid: Validate rejects it and every
// aggregate constructor calls Validate on the identifiers it receives. Use
// NewUUID for fresh identifiers, UUIDFromString for ids arriving over HTTP and
// UUIDFromBytes for ids read back from storage.
//
// Example:
//
//	requestID := kernel.NewUUID()
//
//	workerID, err := kernel.UUIDFromString(c.Param("workerId"))
//	if err != nil {
//	    return badRequest(c, err)
//	}
//
//	if request.IsAssignedTo(workerID) {
//	    // ...
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (v4) identifier.
// The result always passes Validate.
//
// Example:
//
//	r, err := pickup.NewRequest(kernel.NewUUID(), details, time.Now().UTC())
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses s in any form accepted by uuid.Parse: canonical,
// braced, urn:uuid: prefixed or 32 bare hex digits.
//
// Parameters:
//   - s: the textual identifier, usually a path parameter or JSON field
//
// Returns:
//   - UUID: the parsed identifier
//   - error: errs.ErrValueIsInvalid if s is not a UUID, or
//     ErrUUIDIsNotConstructed if s is the nil UUID
//
// Example:
//
//	id, err := kernel.UUIDFromString("3f1c2a9e-7b4d-4e8a-9c61-0d2e5f7a8b90")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(id) // 3f1c2a9e-7b4d-4e8a-9c61-0d2e5f7a8b90
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes restores an identifier from its 16 raw bytes.
//
// Parameters:
//   - b: exactly 16 bytes in network order
//
// Returns:
//   - UUID: the restored identifier
//   - error: a format error if len(b) != 16, or ErrUUIDIsNotConstructed
//     if all bytes are zero
//
// Example:
//
//	var raw uuid.UUID // scanned from a uuid column
//	id, err := kernel.UUIDFromBytes(raw[:])
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	restored := UUID{id: id}
	if err = restored.Validate(); err != nil {
		return UUID{}, err
	}
	return restored, nil
}

// String returns the canonical lowercase form, e.g.
// "3f1c2a9e-7b4d-4e8a-9c61-0d2e5f7a8b90".
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value, used by persistence DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether u and other hold the same identifier.
// Two zero values are equal.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the zero value.
//
// Returns:
//   - nil for any identifier built by NewUUID, UUIDFromString or UUIDFromBytes
//   - ErrUUIDIsNotConstructed for the zero value
//
// Example:
//
//	if err := cmd.WorkerID().Validate(); err != nil {
//	    return nil, err
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
