package api

import (
	"net/http"

	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	promotions queries.PromotionQueries
	spots      queries.SpotQueries
	accounts   queries.AccountQueries
}

func NewCatalogHandler(promotions queries.PromotionQueries, spots queries.SpotQueries, accounts queries.AccountQueries) *CatalogHandler {
	return &CatalogHandler{
		promotions: promotions,
		spots:      spots,
		accounts:   accounts,
	}
}

// @Summary List active discounts
// @Description Per-product discount table built from the active POS promotions
// @Tags promotions
// @Produce json
// @Success 200 {object} resdto.PromotionsResponse
// @Failure 502 {object} httperr.Response
// @Router /api/promotions [get]
func (h *CatalogHandler) Promotions(c *gin.Context) {
	view, err := h.promotions.Discounts(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadGateway, err, httperr.CodeUpstream, "Promotions are unavailable", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDiscountsView(view))
}

// @Summary List pickup spots
// @Tags spots
// @Produce json
// @Success 200 {array} resdto.SpotResponse
// @Failure 502 {object} httperr.Response
// @Router /api/spots [get]
func (h *CatalogHandler) Spots(c *gin.Context) {
	views, err := h.spots.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadGateway, err, httperr.CodeUpstream, "Spots are unavailable", nil)
		return
	}
	res, err := resdto.FromSpotViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.CodeInternal, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Current account
// @Description Caller's POS profile with bonus balance in minor units
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AccountResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/account [get]
func (h *CatalogHandler) Account(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingSession, httperr.CodeUnauthorized, "Client session required", nil)
		return
	}

	view, err := h.accounts.GetAccount(c.Request.Context(), session)
	if err != nil {
		if errs.Is(err, queries.ErrAccountNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, httperr.CodeNotFound, "Account not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadGateway, err, httperr.CodeUpstream, "Account is unavailable", nil)
		return
	}

	res, err := resdto.FromAccountView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, httperr.CodeInternal, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
