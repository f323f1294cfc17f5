package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type productResponse struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

type cartItemResponse struct {
	Product   productResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal float64         `json:"line_total"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price.InexactFloat64(),
	}
}

func listProductsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		products, err := deps.ProductRepo.List(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
			return
		}

		cart, err := deps.CartSvc.Get(ctx, sessionToken(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		out := make([]productResponse, 0, len(products))
		for _, p := range products {
			out = append(out, toProductResponse(p))
		}
		c.JSON(http.StatusOK, gin.H{
			"products":   out,
			"cart_count": cart.Count(),
		})
	}
}

func viewCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		cart, err := deps.CartSvc.Get(ctx, sessionToken(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		items, err := deps.CartSvc.Materialize(ctx, cart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		out := make([]cartItemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, cartItemResponse{
				Product:   toProductResponse(item.Product),
				Quantity:  item.Quantity,
				LineTotal: item.LineTotal.InexactFloat64(),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"items":       out,
			"grand_total": cartsvc.GrandTotal(items).InexactFloat64(),
		})
	}
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func addToCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}

		cart, err := deps.CartSvc.Add(c.Request.Context(), sessionToken(c), req.ProductID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"cart_count": cart.Count(),
		})
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.CartSvc.Clear(c.Request.Context(), sessionToken(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type updateCartRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=increase decrease"`
}

// updateCartHandler handles the + and - clicks without a page reload.
func updateCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id and a valid action are required"})
			return
		}

		res, err := deps.CartSvc.Adjust(c.Request.Context(), sessionToken(c), req.ProductID, req.Action)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"new_quantity": res.NewQuantity,
			"item_total":   res.ItemTotal.InexactFloat64(),
			"grand_total":  res.GrandTotal.InexactFloat64(),
			"cart_count":   res.CartCount,
		})
	}
}
