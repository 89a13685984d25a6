package api

import (
	"net/http"
	"strconv"

	"meetroom/internal/domain/room"
	"meetroom/internal/handler/httperr"
	"meetroom/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithUsecaseError maps an error category to a status. Remote and
// unexpected failures hide their detail behind msg.
func abortWithUsecaseError(c *gin.Context, err error, msg string) {
	switch errs.Category(err) {
	case errs.ErrInvalidInput:
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	case errs.ErrNotFound, errs.ErrNoAvailability:
		httperr.AbortWithError(c, http.StatusNotFound, err, err.Error(), nil)
	case errs.ErrConflict:
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

func roomKeyParams(c *gin.Context) (roomNo, floorNo int, ok bool) {
	floorNo, err := strconv.Atoi(c.Param("floorNo"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, room.ErrInvalidFloorNo.Error(), nil)
		return 0, 0, false
	}
	roomNo, err = strconv.Atoi(c.Param("roomNo"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, room.ErrInvalidRoomNo.Error(), nil)
		return 0, 0, false
	}
	return roomNo, floorNo, true
}
