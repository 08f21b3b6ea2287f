package reviews

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/auth"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Public: approved reviews of a product
func (h *Handler) ListForProduct(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	out, err := h.repo.ListForProduct(c.Request.Context(), productID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

type createReq struct {
	Rating int    `json:"rating" binding:"required"`
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
}

func (h *Handler) Create(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rv, err := h.repo.Create(c.Request.Context(), CreateInput{
		ProductID: productID,
		UserID:    auth.UserID(c),
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusCreated, rv)
}

func (h *Handler) Update(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rv, err := h.repo.Update(c.Request.Context(), id, auth.UserID(c), req.Rating, req.Title, req.Body)
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *Handler) Delete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.repo.Delete(c.Request.Context(), id, auth.UserID(c), auth.IsStaff(c)); err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type approveReq struct {
	Approved *bool `json:"approved" binding:"required"`
}

// Admin moderation
func (h *Handler) AdminSetApproved(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req approveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rv, err := h.repo.SetApproved(c.Request.Context(), id, *req.Approved)
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, rv)
}
