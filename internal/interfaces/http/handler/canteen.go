package handler

import (
	appcanteen "github.com/easygo-schools/backend/internal/application/canteen"
	"github.com/easygo-schools/backend/internal/domain/canteen"
	"github.com/gin-gonic/gin"
)

// CanteenHandler handles daily menus and meal orders
type CanteenHandler struct {
	BaseHandler
	canteenService *appcanteen.CanteenService
}

// NewCanteenHandler creates a new canteen handler
func NewCanteenHandler(canteenService *appcanteen.CanteenService) *CanteenHandler {
	return &CanteenHandler{canteenService: canteenService}
}

// MenuActiveRequest toggles a menu's availability
type MenuActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// CreateMenu publishes a dated menu
func (h *CanteenHandler) CreateMenu(c *gin.Context) {
	var req appcanteen.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	menu, err := h.canteenService.CreateMenu(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, menu)
}

// SetMenuActive activates or deactivates a menu
func (h *CanteenHandler) SetMenuActive(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid menu ID")
		return
	}

	var req MenuActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	menu, err := h.canteenService.SetMenuActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, menu)
}

// GetMenu returns a single menu by ID
func (h *CanteenHandler) GetMenu(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid menu ID")
		return
	}

	menu, err := h.canteenService.GetMenu(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, menu)
}

// ListMenus returns menus matching the query filters
func (h *CanteenHandler) ListMenus(c *gin.Context) {
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

	filter := canteen.MenuFilter{
		FromDate:   fromDate,
		ToDate:     toDate,
		MealType:   canteen.MealType(c.Query("meal_type")),
		ActiveOnly: c.Query("active_only") == "true",
		Page:       list.Page,
		PageSize:   list.PageSize,
	}

	menus, total, err := h.canteenService.ListMenus(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, menus, total, list.Page, list.PageSize)
}

// PlaceOrder books a meal for a student
func (h *CanteenHandler) PlaceOrder(c *gin.Context) {
	var req appcanteen.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.canteenService.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ConfirmOrder reserves servings and confirms the order
func (h *CanteenHandler) ConfirmOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.canteenService.ConfirmOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CancelOrder cancels an order before the menu date, releasing servings
func (h *CanteenHandler) CancelOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req appcanteen.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.canteenService.CancelOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ServeOrder marks a confirmed order as served
func (h *CanteenHandler) ServeOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.canteenService.MarkOrderServed(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// PayOrder marks an order as paid
func (h *CanteenHandler) PayOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.canteenService.MarkOrderPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// GetOrder returns a single order by ID
func (h *CanteenHandler) GetOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.canteenService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListOrders returns orders matching the query filters
func (h *CanteenHandler) ListOrders(c *gin.Context) {
	list, err := bindPagination(c)
	if err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}
	studentID, err := parseUUIDQuery(c, "student_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	menuID, err := parseUUIDQuery(c, "menu_id")
	if err != nil {
		h.BadRequest(c, err.Error())
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

	filter := canteen.OrderFilter{
		StudentID: studentID,
		MenuID:    menuID,
		Status:    canteen.OrderStatus(c.Query("status")),
		FromDate:  fromDate,
		ToDate:    toDate,
		Page:      list.Page,
		PageSize:  list.PageSize,
	}

	orders, total, err := h.canteenService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, list.Page, list.PageSize)
}
