package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	orderdomain "github.com/pdushie/bundle-management-app-sub001/internal/order/domain"
	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

var (
	ErrInvalidRequest = &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request"}
	ErrInternal       = &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"}
)

// AbortWithError maps domain errors onto HTTP responses. Pricing gaps are
// 422s carrying the offending allocation so clients can surface them.
func AbortWithError(c *gin.Context, err error) {
	var noPricing *pricingdomain.NoPricingError
	var api *apiError

	switch {
	case errors.As(err, &noPricing):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error": gin.H{
				"code":          "no_pricing_for_allocation",
				"message":       noPricing.Error(),
				"allocation_gb": noPricing.AllocationGB,
				"profile_name":  noPricing.ProfileName,
			},
		})
	case errors.Is(err, pricingdomain.ErrProfileNotFound),
		errors.Is(err, orderdomain.ErrOrderNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "not_found", "message": err.Error()},
		})
	case errors.As(err, &api):
		c.AbortWithStatusJSON(api.Status, gin.H{
			"error": gin.H{"code": api.Code, "message": api.Message},
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": ErrInternal.Code, "message": ErrInternal.Message},
		})
	}
}
