package cart

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/auth"
	"github.com/steffenjoachim/my-shop/internal/domain/order"
	"github.com/steffenjoachim/my-shop/internal/orders"
)

type Handler struct {
	repo   *Repo
	orders *orders.Repo
}

func NewHandler(repo *Repo, orderRepo *orders.Repo) *Handler {
	return &Handler{repo: repo, orders: orderRepo}
}

func (h *Handler) GetMyCart(c *gin.Context) {
	crt, err := h.repo.GetCart(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, crt)
}

type itemReq struct {
	ProductID          int64             `json:"product" binding:"required"`
	SelectedAttributes map[string]string `json:"selected_attributes"`
	Qty                int               `json:"quantity"`
}

func (h *Handler) AddItem(c *gin.Context) {
	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Qty <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.repo.AddItem(c.Request.Context(), auth.UserID(c), req.ProductID, req.SelectedAttributes, req.Qty); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to add item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) UpdateQty(c *gin.Context) {
	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Qty <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.repo.UpdateQty(c.Request.Context(), auth.UserID(c), req.ProductID, req.SelectedAttributes, req.Qty); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update qty"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) RemoveItem(c *gin.Context) {
	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.repo.RemoveItem(c.Request.Context(), auth.UserID(c), req.ProductID, req.SelectedAttributes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to remove item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type checkoutReq struct {
	Address       order.Address `json:"address"`
	PaymentMethod string        `json:"paymentMethod"`
}

// Checkout places an order from the stored cart. The cart is only a
// convenience: it is converted to the same explicit line-item slice the
// order endpoint takes, and cleared once the order committed.
func (h *Handler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID := auth.UserID(c)
	crt, err := h.repo.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}

	items := make([]orders.LineItem, 0, len(crt.Items))
	for _, it := range crt.Items {
		items = append(items, orders.LineItem{
			ProductID:          it.ProductID,
			Quantity:           it.Qty,
			SelectedAttributes: it.SelectedAttributes,
		})
	}

	o, err := h.orders.PlaceOrder(c.Request.Context(), orders.PlaceOrderInput{
		UserID:        userID,
		Items:         items,
		Address:       req.Address,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}

	// Order is already committed; a stale cart is recoverable.
	if err := h.repo.Clear(c.Request.Context(), userID); err != nil {
		log.Printf("user %d: failed to clear cart after checkout: %v", userID, err)
	}
	c.JSON(http.StatusCreated, o)
}
