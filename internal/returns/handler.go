package returns

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/auth"
	"github.com/steffenjoachim/my-shop/internal/domain/returns"
)

type Handler struct {
	workflow *Workflow
	repo     *Repo
}

func NewHandler(workflow *Workflow, repo *Repo) *Handler {
	return &Handler{workflow: workflow, repo: repo}
}

type requestReturnReq struct {
	ItemID      int64  `json:"item_id" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	OtherReason string `json:"other_reason"`
	Comments    string `json:"comments"`
}

// POST /orders/:id/returns
func (h *Handler) Request(c *gin.Context) {
	orderID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req requestReturnReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	out, err := h.workflow.Request(c.Request.Context(), auth.UserID(c), auth.IsStaff(c), orderID, RequestInput{
		ItemID:      req.ItemID,
		Reason:      returns.Reason(req.Reason),
		OtherReason: req.OtherReason,
		Comments:    req.Comments,
	})
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) ListMine(c *gin.Context) {
	out, err := h.repo.ListForUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list returns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// Staff: all returns, closed ones included.
func (h *Handler) ListAll(c *gin.Context) {
	out, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list returns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func (h *Handler) Get(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	req, err := h.repo.ByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	if req.UserID != auth.UserID(c) && !auth.IsStaff(c) {
		c.JSON(apperr.Response(apperr.ErrPermission))
		return
	}
	c.JSON(http.StatusOK, req)
}

type transitionReq struct {
	Status           string           `json:"status" binding:"required"`
	RejectionReason  *string          `json:"rejection_reason"`
	RejectionComment string           `json:"rejection_comment"`
	RefundName       string           `json:"refund_name"`
	RefundAmount     *decimal.Decimal `json:"refund_amount"`
	RefundIBAN       string           `json:"refund_iban"`
}

// PATCH /shipping/returns/:id — staff only (enforced by route middleware)
func (h *Handler) Transition(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	in := TransitionInput{
		Status:           returns.Status(req.Status),
		RejectionComment: req.RejectionComment,
		RefundName:       req.RefundName,
		RefundAmount:     req.RefundAmount,
		RefundIBAN:       req.RefundIBAN,
	}
	if req.RejectionReason != nil {
		reason := returns.RejectionReason(*req.RejectionReason)
		in.RejectionReason = &reason
	}

	out, err := h.workflow.Transition(c.Request.Context(), id, in)
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, out)
}
