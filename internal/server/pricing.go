package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

// @Summary      List Pricing Profiles
// @Description  List all pricing profiles with their tiers
// @Tags         pricing
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /profiles [get]
func (s *Server) ListProfiles(c *gin.Context) {
	profiles, err := s.pricingSvc.ListProfiles(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondList(c, profiles)
}

// @Summary      Get Pricing Profile
// @Description  Get a pricing profile by ID
// @Tags         pricing
// @Produce      json
// @Param        id   path      string  true  "Profile ID"
// @Success      200  {object}  map[string]any
// @Router       /profiles/{id} [get]
func (s *Server) GetProfileByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	profile, err := s.pricingSvc.GetProfile(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, profile)
}

// @Summary      Resolve User Profile
// @Description  Resolve the pricing profile that applies to a user
// @Tags         pricing
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]any
// @Router       /users/{id}/profile [get]
func (s *Server) GetUserProfile(c *gin.Context) {
	// An unparseable or unknown user still resolves, ending at the
	// built-in default.
	userID, err := parseID(c.Param("id"))
	if err != nil {
		userID = 0
	}

	profile := s.pricingSvc.ResolveProfile(c.Request.Context(), userID)
	respondData(c, profile)
}

type quoteRequest struct {
	UserID       string          `json:"user_id"`
	AllocationGB decimal.Decimal `json:"allocation_gb"`
}

// @Summary      Quote Allocation
// @Description  Price a single allocation under the strict exact-match policy
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body quoteRequest true "Quote Request"
// @Success      200  {object}  map[string]any
// @Failure      422  {object}  map[string]any
// @Router       /pricing/quote [post]
func (s *Server) QuoteAllocation(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	userID, _ := parseID(req.UserID)

	cost, profile, err := s.pricingSvc.Quote(c.Request.Context(), userID, req.AllocationGB)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{
		"allocation_gb": req.AllocationGB,
		"cost":          cost,
		"profile_id":    profile.ID,
		"profile_name":  profile.Name,
	})
}

type validateRequest struct {
	UserID  string                     `json:"user_id"`
	Entries []pricingdomain.Allocation `json:"entries"`
}

// @Summary      Validate Order Pricing
// @Description  Batch pre-flight check of entries against the user's tiers
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body validateRequest true "Validate Request"
// @Success      200  {object}  map[string]any
// @Router       /pricing/validate [post]
func (s *Server) ValidatePricing(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	userID, _ := parseID(req.UserID)

	report, profile, err := s.pricingSvc.ValidateForUser(c.Request.Context(), userID, req.Entries)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondData(c, gin.H{
		"report":       report,
		"profile_id":   profile.ID,
		"profile_name": profile.Name,
	})
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
