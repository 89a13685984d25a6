package room

import "meetroom/internal/pkg/errs"

var (
	ErrInvalidRoomNo    = errs.Mark(errs.New("room number must be a positive integer greater than 0"), errs.ErrInvalidInput)
	ErrInvalidFloorNo   = errs.Mark(errs.New("floor number must be a non-negative integer"), errs.ErrInvalidInput)
	ErrInvalidCapacity  = errs.Mark(errs.New("room capacity must be a positive integer greater than 0"), errs.ErrInvalidInput)
	ErrInvalidSeatCount = errs.Mark(errs.New("please enter a valid number of seats"), errs.ErrInvalidInput)

	ErrAlreadyOccupied = errs.Mark(errs.New("room is already occupied"), errs.ErrConflict)
	ErrAlreadyFree     = errs.Mark(errs.New("room is already free"), errs.ErrConflict)
	ErrOccupiedModify  = errs.Mark(errs.New("cannot modify an occupied room"), errs.ErrConflict)
	ErrOccupiedDelete  = errs.Mark(errs.New("cannot delete a currently occupied room"), errs.ErrConflict)

	ErrNoAvailability = errs.Mark(errs.New("no rooms available for the requested number of seats"), errs.ErrNoAvailability)
)
