package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// CatalogHandler serves products, reviews, categories and the chatbot.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type chatbotRequest struct {
	Question string `json:"question" validate:"required"`
}

type chatbotResponse struct {
	Response string `json:"response"`
}

// List returns every product.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Product
// @Router       /api/products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Search filters products. Blank filters are ignored.
//
// @Summary      Search products
// @Tags         catalog
// @Produce      json
// @Param        keyword   query     string  false  "Name keyword"
// @Param        category  query     string  false  "Category id"
// @Param        minPrice  query     number  false  "Minimum price"
// @Param        maxPrice  query     number  false  "Maximum price"
// @Param        rating    query     int     false  "Minimum rating (1-5)"
// @Param        sortBy    query     string  false  "latest, priceLowHigh, priceHighLow or bestSelling"
// @Success      200       {array}   domain.Product
// @Failure      400       {object}  map[string]string
// @Router       /api/products/search [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	params, err := domain.ParseProductSearchParams(c.QueryParams())
	if err != nil {
		return err
	}
	products, err := h.catalog.Search(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns one product.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	product, err := h.catalog.Product(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Reviews lists the reviews of a product.
//
// @Summary      List reviews
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {array}   domain.Review
// @Router       /api/products/{id}/reviews [get]
func (h *CatalogHandler) Reviews(c echo.Context) error {
	reviews, err := h.catalog.Reviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// SubmitReview rates a product as the logged-in user.
//
// @Summary      Review a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Product id"
// @Param        body  body      reviewRequest  true  "Rating and comment"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/products/{id}/reviews [post]
func (h *CatalogHandler) SubmitReview(c echo.Context) error {
	var req reviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	msg, err := h.catalog.SubmitReview(c.Request().Context(), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Categories lists product categories.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /api/categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.catalog.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Chatbot forwards a shopping question to the assistant.
//
// @Summary      Ask the chatbot
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      chatbotRequest  true  "Question"
// @Success      200   {object}  chatbotResponse
// @Router       /api/chatbot [post]
func (h *CatalogHandler) Chatbot(c echo.Context) error {
	var req chatbotRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	answer, err := h.catalog.AskChatbot(c.Request().Context(), req.Question)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatbotResponse{Response: answer})
}
