package request

import (
	"strings"

	"meetroom/internal/usecase/commands"
)

type CreateBookingRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	RoomNo   *int   `json:"roomNo" binding:"required"`
	FloorNo  *int   `json:"floorNo" binding:"required"`
}

// ToParams falls back to the token identity when the body names no requester.
func (r *CreateBookingRequest) ToParams(tokenUserID, tokenUserName string) commands.ConfirmBookingParams {
	userID, userName := r.UserID, r.UserName
	if strings.TrimSpace(userID) == "" {
		userID = tokenUserID
		if userName == "" {
			userName = tokenUserName
		}
	}
	return commands.ConfirmBookingParams{
		UserID:   userID,
		UserName: userName,
		RoomNo:   *r.RoomNo,
		FloorNo:  *r.FloorNo,
	}
}
