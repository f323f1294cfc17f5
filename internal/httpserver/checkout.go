package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func createCheckoutSessionHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := strings.TrimRight(deps.PublicBaseURL, "/")
		// The provider substitutes its session id into the placeholder on redirect.
		successURL := base + "/success?session_id={CHECKOUT_SESSION_ID}"
		cancelURL := base + "/cart"

		sessionID, err := deps.CheckoutSvc.Begin(c.Request.Context(), sessionToken(c), successURL, cancelURL)
		if err != nil {
			var creationErr *domain.CheckoutCreationError
			switch {
			case errors.Is(err, domain.ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			case errors.As(err, &creationErr):
				c.JSON(http.StatusForbidden, gin.H{"error": creationErr.Message})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start checkout"})
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": sessionID})
	}
}

func paymentSuccessHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.Query("session_id"))
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		order, err := deps.CheckoutSvc.Confirm(c.Request.Context(), sessionToken(c), sessionID)
		if err != nil {
			// Deliberately generic: the visitor retries, the details are in the logs.
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment Verification Failed"})
			return
		}

		resp := gin.H{"status": "paid"}
		if order != nil {
			resp["order_id"] = order.ID
		}
		c.JSON(http.StatusOK, resp)
	}
}
