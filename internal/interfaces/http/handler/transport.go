package handler

import (
	apptransport "github.com/easygo-schools/backend/internal/application/transport"
	"github.com/easygo-schools/backend/internal/domain/transport"
	"github.com/gin-gonic/gin"
)

// TransportHandler handles bus routes and transport enrollment
type TransportHandler struct {
	BaseHandler
	transportService *apptransport.TransportService
}

// NewTransportHandler creates a new transport handler
func NewTransportHandler(transportService *apptransport.TransportService) *TransportHandler {
	return &TransportHandler{transportService: transportService}
}

// Create registers a bus route with its stops
func (h *TransportHandler) Create(c *gin.Context) {
	var req apptransport.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	route, err := h.transportService.CreateRoute(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, route)
}

// AddStop appends a stop to a route
func (h *TransportHandler) AddStop(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	var req apptransport.StopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	route, err := h.transportService.AddStop(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}

// Enroll subscribes a student to a route at a stop
func (h *TransportHandler) Enroll(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	var req apptransport.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	route, err := h.transportService.EnrollStudent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}

// Remove unsubscribes a student from a route
func (h *TransportHandler) Remove(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	var req apptransport.RemoveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	route, err := h.transportService.RemoveStudent(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}

// Suspend takes a route out of service
func (h *TransportHandler) Suspend(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	route, err := h.transportService.SuspendRoute(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}

// Resume puts a suspended route back in service
func (h *TransportHandler) Resume(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	route, err := h.transportService.ResumeRoute(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}

// Get returns a single route by ID
func (h *TransportHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	route, err := h.transportService.GetRoute(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, route)
}

// List returns routes matching the query filters
func (h *TransportHandler) List(c *gin.Context) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := transport.RouteFilter{
		Search:   c.Query("search"),
		Status:   transport.RouteStatus(c.Query("status")),
		Page:     list.Page,
		PageSize: list.PageSize,
	}

	routes, total, err := h.transportService.ListRoutes(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, routes, total, list.Page, list.PageSize)
}
