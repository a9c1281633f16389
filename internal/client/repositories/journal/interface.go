// Package journal persists in-flight workflow state so it survives restarts:
// the step cursor of edit sagas and the ids of contacts whose server-side
// delete has not been confirmed yet.
package journal

import (
	"context"
)

// Checkpoint is the durable state of one edit saga. State is the serialized
// edit session; Step is the number of saga steps already completed.
type Checkpoint struct {
	ContactID int
	SessionID string
	Step      int
	State     []byte
}

type Repository interface {
	// SaveCheckpoint creates or replaces the checkpoint of cp.ContactID.
	SaveCheckpoint(ctx context.Context, cp Checkpoint) error

	// LoadCheckpoint returns the checkpoint for contactID, or nil if none.
	LoadCheckpoint(ctx context.Context, contactID int) (*Checkpoint, error)

	// DeleteCheckpoint removes the checkpoint for contactID. Missing rows are not an error.
	DeleteCheckpoint(ctx context.Context, contactID int) error

	// MarkPendingDelete records that a delete of contactID was issued.
	MarkPendingDelete(ctx context.Context, contactID int) error

	// ClearPendingDelete forgets the pending delete of contactID.
	ClearPendingDelete(ctx context.Context, contactID int) error

	// PendingDeletes lists contacts with an unconfirmed delete, oldest first.
	PendingDeletes(ctx context.Context) ([]int, error)
}
