package server

import (
	"github.com/gin-gonic/gin"
)

// @Summary      Get Order
// @Description  Get an order with its entries
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  map[string]any
// @Router       /orders/{id} [get]
func (s *Server) GetOrderByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	order, err := s.orderSvc.GetOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, order)
}

// @Summary      Recompute Order Costs
// @Description  Recompute all entry costs and the order total, then persist
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  map[string]any
// @Router       /orders/{id}/recompute [post]
func (s *Server) RecomputeOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	order, err := s.orderSvc.RecomputeOrder(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, order)
}
