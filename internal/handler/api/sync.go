package api

import (
	"net/http"

	"meetroom/internal/domain/pendingwrite"
	resdto "meetroom/internal/handler/dto/response"
	"meetroom/internal/handler/httperr"
	"meetroom/internal/usecase/offline"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	svc offline.SyncService
}

func NewSyncHandler(svc offline.SyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// @Summary Pending writes
// @Description Writes captured while offline, in replay order
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PendingWriteResponse
// @Router /sync/pending [get]
func (h *SyncHandler) Pending(c *gin.Context) {
	writes, err := h.svc.Pending(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read offline queue", nil)
		return
	}
	h.respondWrites(c, writes)
}

// @Summary Drain offline queue
// @Description Replay pending writes now. Refused while the remote store is unreachable.
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.DrainResponse
// @Failure 409 {object} httperr.Response
// @Router /sync/drain [post]
func (h *SyncHandler) Drain(c *gin.Context) {
	result, err := h.svc.Drain(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to drain offline queue", nil)
		return
	}
	res, err := resdto.FromDrainResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Dead letters
// @Description Writes that failed to replay under the retain policy
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PendingWriteResponse
// @Router /sync/dead-letters [get]
func (h *SyncHandler) DeadLetters(c *gin.Context) {
	writes, err := h.svc.DeadLetters(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read dead letters", nil)
		return
	}
	h.respondWrites(c, writes)
}

// @Summary Requeue dead letters
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RequeueResponse
// @Router /sync/dead-letters/requeue [post]
func (h *SyncHandler) Requeue(c *gin.Context) {
	n, err := h.svc.RequeueDeadLetters(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to requeue dead letters", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.RequeueResponse{Requeued: n})
}

func (h *SyncHandler) respondWrites(c *gin.Context, writes []*pendingwrite.Write) {
	res, err := resdto.FromPendingWrites(writes)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
