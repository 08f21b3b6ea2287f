package products

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/steffenjoachim/my-shop/internal/apperr"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Public: list products (optional category=slug)
func (h *Handler) ListPublic(c *gin.Context) {
	var cat *string
	if v := c.Query("category"); v != "" {
		cat = &v
	}

	items, err := h.repo.ListPublic(c.Request.Context(), cat)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Public: product details with images, variations and rating aggregate
func (h *Handler) GetPublic(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	p, err := h.repo.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusOK, p)
}

type CreateVariationReq struct {
	Attributes map[string]string `json:"attributes" binding:"required"` // e.g. {"Color":"Red","Size":"M"}
	Stock      int               `json:"stock"`
}

type CreateProductReq struct {
	CategoryID     *int64               `json:"category_id"`
	Title          string               `json:"title" binding:"required"`
	Description    string               `json:"description"`
	Price          decimal.Decimal      `json:"price" binding:"required"`
	MainImage      string               `json:"main_image"`
	DeliveryTimeID *int64               `json:"delivery_time_id"`
	Images         []string             `json:"images"`
	Variations     []CreateVariationReq `json:"variations"`
}

// Admin: create product + variations
func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var vars []CreateVariationInput
	for _, v := range req.Variations {
		vars = append(vars, CreateVariationInput{Attributes: v.Attributes, Stock: v.Stock})
	}

	p, err := h.repo.CreateProduct(c.Request.Context(), CreateProductInput{
		CategoryID:     req.CategoryID,
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		MainImage:      req.MainImage,
		DeliveryTimeID: req.DeliveryTimeID,
		Images:         req.Images,
		Variations:     vars,
	})
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Admin: add a variation to an existing product
func (h *Handler) AdminAddVariation(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req CreateVariationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	v, err := h.repo.AddVariation(c.Request.Context(), id, CreateVariationInput{
		Attributes: req.Attributes,
		Stock:      req.Stock,
	})
	if err != nil {
		c.JSON(apperr.Response(err))
		return
	}
	c.JSON(http.StatusCreated, v)
}
