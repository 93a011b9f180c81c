package handler

import (
	"time"

	appcomms "github.com/easygo-schools/backend/internal/application/comms"
	"github.com/easygo-schools/backend/internal/domain/comms"
	"github.com/gin-gonic/gin"
)

// CommsHandler exposes the communication log for auditing
type CommsHandler struct {
	BaseHandler
	commsService *appcomms.CommsService
}

// NewCommsHandler creates a new comms handler
func NewCommsHandler(commsService *appcomms.CommsService) *CommsHandler {
	return &CommsHandler{commsService: commsService}
}

// ListLogs returns communication log entries matching the query filters
func (h *CommsHandler) ListLogs(c *gin.Context) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}
	fromDate, err := parseDateQuery(c, "from_date")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	toDate, err := parseDateQuery(c, "to_date")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := comms.LogFilter{
		Channel:  comms.Channel(c.Query("channel")),
		Status:   comms.DeliveryStatus(c.Query("status")),
		FromDate: fromDate,
		ToDate:   toDate,
		Page:     list.Page,
		PageSize: list.PageSize,
	}

	entries, total, err := h.commsService.ListLogs(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, list.Page, list.PageSize)
}

// ChannelStats returns per-channel delivery counts over a period
func (h *CommsHandler) ChannelStats(c *gin.Context) {
	fromDate, err := parseDateQuery(c, "from_date")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	toDate, err := parseDateQuery(c, "to_date")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	// Default to the trailing 30 days
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	if fromDate != nil {
		from = *fromDate
	}
	if toDate != nil {
		to = *toDate
	}

	stats, err := h.commsService.ChannelStats(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
