package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
	"github.com/gin-gonic/gin"
)

func sessionUser(c *gin.Context) *models.User {
	return c.MustGet(ctxUserKey).(*models.User)
}

// requireOwnUser rejects requests whose :userId path parameter names a
// different user than the session. Cart rows are reachable only by
// their owner.
func requireOwnUser(c *gin.Context) (int64, error) {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return 0, err
	}
	if userID != sessionUser(c).ID {
		return 0, fmt.Errorf("%w: cart belongs to another user", common.ErrorUnauthorized)
	}
	return userID, nil
}

func (s *Server) getCart(c *gin.Context) {
	userID, err := requireOwnUser(c)
	if err != nil {
		writeError(c, err)
		return
	}

	items, err := s.cart.GetAll(c.Request.Context(), userID)
	if err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) addCartItem(c *gin.Context) {
	partID, err := parseIDParam(c, "partId")
	if err != nil {
		writeError(c, err)
		return
	}

	item, err := s.cart.Add(c.Request.Context(), sessionUser(c).ID, partID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) updateCount(c *gin.Context) {
	partID, err := parseIDParam(c, "partId")
	if err != nil {
		writeError(c, err)
		return
	}

	var req struct {
		Count int64 `json:"count" binding:"required,gte=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	count, err := s.cart.UpdateCount(c.Request.Context(), sessionUser(c).ID, partID, req.Count)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) updateTotalPrice(c *gin.Context) {
	partID, err := parseIDParam(c, "partId")
	if err != nil {
		writeError(c, err)
		return
	}

	var req struct {
		TotalPrice *int64 `json:"total_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || *req.TotalPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "total_price must be a non-negative integer"})
		return
	}

	totalPrice, err := s.cart.UpdateTotalPrice(c.Request.Context(), sessionUser(c).ID, partID, *req.TotalPrice)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_price": totalPrice})
}

func (s *Server) deleteCartItem(c *gin.Context) {
	partID, err := parseIDParam(c, "partId")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.cart.DeleteOne(c.Request.Context(), sessionUser(c).ID, partID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) deleteCart(c *gin.Context) {
	userID, err := requireOwnUser(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.cart.DeleteAll(c.Request.Context(), userID); err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
