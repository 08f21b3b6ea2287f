package orders

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/auth"
	"github.com/steffenjoachim/my-shop/internal/domain/order"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

type placeOrderReq struct {
	CartItems     []LineItem    `json:"cartItems" binding:"required"`
	Address       order.Address `json:"address"`
	PaymentMethod string        `json:"paymentMethod"`
}

func (h *Handler) Place(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	o, err := h.repo.PlaceOrder(c.Request.Context(), PlaceOrderInput{
		UserID:        auth.UserID(c),
		Items:         req.CartItems,
		Address:       req.Address,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) ListMine(c *gin.Context) {
	out, err := h.repo.ListForUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *Handler) Get(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	o, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	if o.UserID != auth.UserID(c) && !auth.IsStaff(c) {
		c.JSON(apperr.Response(apperr.ErrPermission))
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.Cancel(c.Request.Context(), id, auth.UserID(c), auth.IsStaff(c)); err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Staff: orders the shipping UI works on, optionally filtered by
// ?status=pending,ready_to_ship
func (h *Handler) ListShipping(c *gin.Context) {
	var statuses []order.Status
	if v := c.Query("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			st := order.Status(strings.TrimSpace(s))
			if !st.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter: " + s})
				return
			}
			statuses = append(statuses, st)
		}
	} else {
		statuses = []order.Status{order.StatusPending, order.StatusReadyToShip}
	}

	out, err := h.repo.ListByStatuses(c.Request.Context(), statuses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

type setShippingReq struct {
	Carrier        string `json:"shipping_carrier" binding:"required"`
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

func (h *Handler) SetShipping(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req setShippingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	o, err := h.repo.SetShipping(c.Request.Context(), id, order.Carrier(req.Carrier), strings.TrimSpace(req.TrackingNumber))
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, o)
}

type updateStatusReq struct {
	Status         string  `json:"status" binding:"required"`
	Carrier        *string `json:"shipping_carrier"`
	TrackingNumber *string `json:"tracking_number"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := StatusUpdate{Status: order.Status(req.Status), Tracking: req.TrackingNumber}
	if req.Carrier != nil {
		carrier := order.Carrier(*req.Carrier)
		in.Carrier = &carrier
	}

	o, err := h.repo.UpdateStatus(c.Request.Context(), id, in)
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	o, err := h.repo.MarkPaid(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, o)
}
