package api

import (
	"net/http"

	"meetroom/internal/domain/room"
	reqdto "meetroom/internal/handler/dto/request"
	resdto "meetroom/internal/handler/dto/response"
	"meetroom/internal/handler/httperr"
	"meetroom/internal/usecase/commands"
	"meetroom/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	cmds commands.RoomCommands
	q    queries.RoomQueries
}

func NewRoomHandler(cmds commands.RoomCommands, q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{cmds: cmds, q: q}
}

// @Summary List rooms
// @Description List every room ordered by floor, then room number
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RoomResponse
// @Failure 500 {object} httperr.Response
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.q.ListRooms(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to list rooms")
		return
	}
	h.respondRooms(c, rooms)
}

// @Summary Suggest rooms
// @Description Rank free rooms that seat the requested number of people
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param seats query int true "Number of seats"
// @Success 200 {object} resdto.SuggestionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/suggestions [get]
func (h *RoomHandler) Suggest(c *gin.Context) {
	s, err := h.q.SuggestRooms(c.Request.Context(), c.Query("seats"))
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to suggest rooms")
		return
	}
	res, err := resdto.FromSuggestion(s)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Add room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room to add"
// @Success 201 {object} resdto.RoomResponse
// @Success 202 {object} resdto.QueuedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	out, err := h.cmds.AddRoom(c.Request.Context(), req.ToParams())
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to add room")
		return
	}
	h.respondOutcome(c, http.StatusCreated, out)
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param floorNo path int true "Floor number"
// @Param roomNo path int true "Room number"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /floors/{floorNo}/rooms/{roomNo} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	roomNo, floorNo, ok := roomKeyParams(c)
	if !ok {
		return
	}
	r, err := h.q.GetRoom(c.Request.Context(), roomNo, floorNo)
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to load room")
		return
	}
	h.respondOutcome(c, http.StatusOK, &commands.RoomOutcome{Room: r})
}

// @Summary Modify room
// @Description Change capacity, room number or floor of a free room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param floorNo path int true "Floor number"
// @Param roomNo path int true "Room number"
// @Param request body reqdto.UpdateRoomRequest true "Fields to change"
// @Success 200 {object} resdto.RoomResponse
// @Success 202 {object} resdto.QueuedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /floors/{floorNo}/rooms/{roomNo} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	roomNo, floorNo, ok := roomKeyParams(c)
	if !ok {
		return
	}
	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	out, err := h.cmds.ModifyRoom(c.Request.Context(), req.ToParams(roomNo, floorNo))
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to modify room")
		return
	}
	h.respondOutcome(c, http.StatusOK, out)
}

// @Summary Delete room
// @Tags rooms
// @Security BearerAuth
// @Param floorNo path int true "Floor number"
// @Param roomNo path int true "Room number"
// @Success 204 "No Content"
// @Success 202 {object} resdto.QueuedResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /floors/{floorNo}/rooms/{roomNo} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	roomNo, floorNo, ok := roomKeyParams(c)
	if !ok {
		return
	}
	out, err := h.cmds.DeleteRoom(c.Request.Context(), commands.DeleteRoomParams{RoomNo: roomNo, FloorNo: floorNo})
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to delete room")
		return
	}
	if out.Queued {
		c.JSON(http.StatusAccepted, resdto.QueuedResponse{Queued: true, PendingWriteID: out.PendingWriteID})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Free room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param floorNo path int true "Floor number"
// @Param roomNo path int true "Room number"
// @Success 200 {object} resdto.RoomResponse
// @Success 202 {object} resdto.QueuedResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /floors/{floorNo}/rooms/{roomNo}/free [post]
func (h *RoomHandler) Free(c *gin.Context) {
	roomNo, floorNo, ok := roomKeyParams(c)
	if !ok {
		return
	}
	out, err := h.cmds.FreeRoom(c.Request.Context(), commands.FreeRoomParams{RoomNo: roomNo, FloorNo: floorNo})
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to free room")
		return
	}
	h.respondOutcome(c, http.StatusOK, out)
}

func (h *RoomHandler) respondRooms(c *gin.Context, rooms []*room.Room) {
	res, err := resdto.FromRooms(rooms)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// respondOutcome answers 202 for a queued write, otherwise status with the room.
func (h *RoomHandler) respondOutcome(c *gin.Context, status int, out *commands.RoomOutcome) {
	if out.Queued {
		c.JSON(http.StatusAccepted, resdto.QueuedResponse{Queued: true, PendingWriteID: out.PendingWriteID})
		return
	}
	res, err := resdto.FromRoom(out.Room)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(status, res)
}
