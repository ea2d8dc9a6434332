package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"lilass/internal/apierror"
	"lilass/internal/dto"
	"lilass/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	homeContentKey = "content:home"
	homeContentTTL = 5 * time.Minute
	featuredLimit  = 8
)

type ContentHandler struct {
	productRepo repository.ProductRepository
	rdb         *redis.Client
}

func NewContentHandler(productRepo repository.ProductRepository, rdb *redis.Client) *ContentHandler {
	return &ContentHandler{productRepo: productRepo, rdb: rdb}
}

// Home godoc
// @Summary      Landing page content with featured products
// @Tags         content
// @Produce      json
// @Success      200 {object} dto.HomeContentResponse
// @Router       /api/content/home [get]
func (h *ContentHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.rdb.Get(ctx, homeContentKey).Result(); err == nil {
		var resp dto.HomeContentResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	featured, err := h.productRepo.ListFeatured(ctx, featuredLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load home content"))
		return
	}

	resp := dto.HomeContentResponse{
		Hero: dto.HeroContent{
			Title:    "Brewed to Perfection",
			Subtitle: "Small-batch beans roasted weekly, delivered to your door.",
			CTA:      dto.ContentCTA{Label: "Shop the roast", Href: "/products"},
			Image:    "/images/hero-coffee.jpg",
		},
		Highlights: []dto.Highlight{
			{Title: "Free Shipping", Description: "On orders over $50."},
			{Title: "Secure Checkout", Description: "Payments handled by a PCI-compliant gateway."},
			{Title: "Quality Beans", Description: "Single-origin lots, cupped and scored before roasting."},
		},
		FeaturedProducts: featured,
	}

	h.cacheHome(ctx, resp)
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) cacheHome(ctx context.Context, resp dto.HomeContentResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.rdb.Set(ctx, homeContentKey, payload, homeContentTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to cache home content")
	}
}

// Page godoc
// @Summary      Static page content by slug
// @Tags         content
// @Produce      json
// @Param        slug path string true "Page slug"
// @Success      200 {object} dto.PageContentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/content/pages/{slug} [get]
func (h *ContentHandler) Page(c *gin.Context) {
	switch c.Param("slug") {
	case "about":
		c.JSON(http.StatusOK, dto.PageContentResponse{
			Title:   "About Lilass",
			Content: "Lilass started as a single espresso cart and grew into a roastery obsessed with traceable, seasonal coffee. Every lot we sell is roasted to order in our workshop.",
		})
	case "contact":
		c.JSON(http.StatusOK, dto.PageContentResponse{
			Title:   "Contact",
			Content: "Reach us at hello@lilass.coffee or visit the roastery Monday through Saturday, 8am to 6pm.",
		})
	default:
		c.JSON(http.StatusNotFound, apierror.New("Page not found"))
	}
}
