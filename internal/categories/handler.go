package categories

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ListDeliveryTimes(c *gin.Context) {
	items, err := h.repo.ListDeliveryTimes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list delivery times"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type createReq struct {
	Name        string `json:"name" binding:"required"`
	DisplayName string `json:"display_name"`
	SortOrder   int    `json:"sort_order"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	cat, err := h.repo.Create(c.Request.Context(), req.Name, req.DisplayName, req.SortOrder)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

type updateReq struct {
	Name        *string `json:"name"`
	DisplayName *string `json:"display_name"`
	SortOrder   *int    `json:"sort_order"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	cat, err := h.repo.Update(c.Request.Context(), id, req.Name, req.DisplayName, req.SortOrder)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update category"})
		return
	}
	c.JSON(http.StatusOK, cat)
}
