package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sba-recon-api/internal/models"
	"github.com/noah-isme/sba-recon-api/pkg/response"
)

type priceRuleLister interface {
	List(ctx context.Context, page, pageSize int) ([]models.PriceRule, int, error)
}

type discountSourceLister interface {
	List(ctx context.Context, page, pageSize int) ([]models.DiscountSource, int, error)
}

// RuleHandler exposes read-only views of the pricing and discount rule tables
// so reviewers can see exactly which rules a batch ran against.
type RuleHandler struct {
	priceRules priceRuleLister
	discounts  discountSourceLister
}

// NewRuleHandler constructs a rule handler.
func NewRuleHandler(priceRules priceRuleLister, discounts discountSourceLister) *RuleHandler {
	return &RuleHandler{priceRules: priceRules, discounts: discounts}
}

// PricingRules godoc
// @Summary List pricing rules
// @Tags Rules
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /rules/pricing [get]
func (h *RuleHandler) PricingRules(c *gin.Context) {
	page, pageSize := pageParams(c)
	rules, total, err := h.priceRules.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rules, models.NewPagination(page, pageSize, total))
}

// DiscountSources godoc
// @Summary List discount sources
// @Tags Rules
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /rules/discounts [get]
func (h *RuleHandler) DiscountSources(c *gin.Context) {
	page, pageSize := pageParams(c)
	sources, total, err := h.discounts.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sources, models.NewPagination(page, pageSize, total))
}
