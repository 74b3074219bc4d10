package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/parts"
	"github.com/gin-gonic/gin"
)

// parseNonNegative parses a required string-encoded non-negative
// integer query parameter. Missing or malformed values are validation
// errors, never silent defaults.
func parseNonNegative(c *gin.Context, name string) (int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", common.ErrorValidation, name)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", common.ErrorValidation, name)
	}
	return n, nil
}

func parsePage(c *gin.Context) (parts.Page, error) {
	limit, err := parseNonNegative(c, "limit")
	if err != nil {
		return parts.Page{}, err
	}
	offset, err := parseNonNegative(c, "offset")
	if err != nil {
		return parts.Page{}, err
	}
	return parts.Page{Limit: limit, Offset: offset}, nil
}

// parseFilter reads the optional predicates of the generic listing.
// The price bounds come as a pair: one without the other is rejected.
func parseFilter(c *gin.Context) (parts.Filter, error) {
	filter := parts.Filter{
		BoilerManufacturer: c.Query("boiler"),
		PartsManufacturer:  c.Query("parts"),
	}

	_, hasFrom := c.GetQuery("priceFrom")
	_, hasTo := c.GetQuery("priceTo")
	if hasFrom != hasTo {
		return parts.Filter{}, fmt.Errorf("%w: priceFrom and priceTo must be supplied together", common.ErrorValidation)
	}
	if hasFrom {
		from, err := parseNonNegative(c, "priceFrom")
		if err != nil {
			return parts.Filter{}, err
		}
		to, err := parseNonNegative(c, "priceTo")
		if err != nil {
			return parts.Filter{}, err
		}
		if from > to {
			return parts.Filter{}, fmt.Errorf("%w: priceFrom must not exceed priceTo", common.ErrorValidation)
		}
		filter.PriceFrom = from
		filter.PriceTo = to
		filter.HasPriceRange = true
	}

	return filter, nil
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", common.ErrorValidation, name)
	}
	return id, nil
}

func (s *Server) findPart(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	part, err := s.catalog.FindOne(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (s *Server) bestsellers(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	list, err := s.catalog.Bestsellers(c.Request.Context(), page)
	if err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) newParts(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}

	list, err := s.catalog.New(c.Request.Context(), page)
	if err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) listParts(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		writeError(c, err)
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		writeError(c, err)
		return
	}

	list, err := s.catalog.List(c.Request.Context(), filter, page)
	if err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) searchParts(c *gin.Context) {

	var req struct {
		Search string `json:"search" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	list, err := s.catalog.Search(c.Request.Context(), req.Search)
	if err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) partByName(c *gin.Context) {

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	part, err := s.catalog.GetByName(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (s *Server) partImages(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	urls, err := s.images.ImageURLs(c.Request.Context(), id)
	if err != nil {
		s.logger.Error(c.Request.Context(), err.Error())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": urls})
}
