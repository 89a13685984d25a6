package commands

import (
	"meetroom/internal/infra"
	"meetroom/internal/pkg/errs"
)

var (
	ErrRoomNotFound     = errs.Mark(errs.New("no room found with the specified room and floor numbers"), errs.ErrNotFound)
	ErrDuplicateRoom    = errs.Mark(errs.New("this room number already exists on this floor"), errs.ErrConflict)
	ErrNothingToModify  = errs.Mark(errs.New("at least one of capacity, room number or floor number must be given"), errs.ErrInvalidInput)
	ErrQueueUnavailable = errs.New("failed to queue write for later replay")
)

func remoteFailure(err error, msg string) error {
	return errs.Mark(errs.Wrap(err, msg), errs.ErrRemoteFailure)
}

// lookupFailure maps a repository miss to notFound and anything else to a remote failure.
func lookupFailure(err error, notFound error, msg string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return remoteFailure(err, msg)
}
