package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	productrepo "storefront/internal/repository/product"
)

type createProductRequest struct {
	Title    string   `json:"title" binding:"required"`
	ImageURL string   `json:"image_url" binding:"required"`
	Price    *float64 `json:"price" binding:"required,gte=0"`
}

func createProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title, image_url and a non-negative price are required"})
			return
		}

		product, err := deps.ProductRepo.Create(c.Request.Context(), productrepo.CreateProductInput{
			Title:    req.Title,
			ImageURL: req.ImageURL,
			Price:    decimal.NewFromFloat(*req.Price).Round(2),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, toProductResponse(*product))
	}
}

type orderResponse struct {
	ID                int64     `json:"id"`
	ProviderSessionID string    `json:"provider_session_id"`
	AmountTotal       float64   `json:"amount_total"`
	Status            string    `json:"status"`
	Timestamp         time.Time `json:"timestamp"`
}

func listTransactionsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := deps.OrderRepo.ListAll(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
			return
		}

		out := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			out = append(out, orderResponse{
				ID:                o.ID,
				ProviderSessionID: o.ProviderSessionID,
				AmountTotal:       o.AmountTotal.InexactFloat64(),
				Status:            o.Status,
				Timestamp:         o.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"transactions": out})
	}
}
