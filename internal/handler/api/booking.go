package api

import (
	"net/http"

	reqdto "meetroom/internal/handler/dto/request"
	resdto "meetroom/internal/handler/dto/response"
	"meetroom/internal/handler/httperr"
	"meetroom/internal/handler/middleware"
	"meetroom/internal/usecase/commands"
	"meetroom/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Confirm booking
// @Description Book a room picked from a suggestion. The room is re-read before it is occupied.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingRecordResponse
// @Success 202 {object} resdto.QueuedResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	userID, _ := middleware.GetUserID(c)
	out, err := h.cmds.ConfirmBooking(c.Request.Context(), req.ToParams(userID, middleware.GetUserName(c)))
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to confirm booking")
		return
	}
	if out.Queued {
		c.JSON(http.StatusAccepted, resdto.QueuedResponse{Queued: true, PendingWriteID: out.PendingWriteID})
		return
	}
	res, err := resdto.FromBookingRecord(out.Record)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Booking log
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingRecordResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	records, err := h.q.ListRecords(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to list bookings")
		return
	}
	res, err := resdto.FromBookingRecords(records)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Reconcile pending bookings
// @Description Commit or remove booking records left pending by an interrupted booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReconcileResponse
// @Router /bookings/reconcile [post]
func (h *BookingHandler) Reconcile(c *gin.Context) {
	res, err := h.cmds.ReconcilePending(c.Request.Context())
	if err != nil {
		abortWithUsecaseError(c, err, "Failed to reconcile bookings")
		return
	}
	c.JSON(http.StatusOK, resdto.ReconcileResponse{Committed: res.Committed, Removed: res.Removed})
}
