package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront-console/internal/core/domain"
	"github.com/99minutos/storefront-console/internal/core/ports"
)

// maxImageSize bounds product image uploads.
const maxImageSize = 5 << 20

// AdminHandler serves the back-office. Routes are mounted behind AdminOnly.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type userUpdateRequest struct {
	Name    string `json:"name" validate:"required"`
	IsAdmin bool   `json:"isAdmin"`
}

type orderStatusResponse struct {
	ID     string             `json:"id"`
	Status domain.OrderStatus `json:"status"`
}

// CreateProduct adds a product from a multipart form with an optional image.
//
// @Summary      Create product
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        name          formData  string  true   "Name"
// @Param        description   formData  string  false  "Description"
// @Param        price         formData  number  true   "Price"
// @Param        countInStock  formData  int     true   "Units in stock"
// @Param        category      formData  string  true   "Category id"
// @Param        image         formData  file    false  "Product image"
// @Success      201           {object}  domain.Product
// @Failure      400           {object}  map[string]string
// @Failure      403           {object}  map[string]string
// @Router       /api/admin/products [post]
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	in, err := productForm(c)
	if err != nil {
		return err
	}
	image, err := imageForm(c)
	if err != nil {
		return err
	}
	product, err := h.admin.CreateProduct(c.Request().Context(), in, image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct edits a product. A new image is uploaded before the update.
//
// @Summary      Update product
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        id            path      string  true   "Product id"
// @Param        name          formData  string  true   "Name"
// @Param        description   formData  string  false  "Description"
// @Param        price         formData  number  true   "Price"
// @Param        countInStock  formData  int     true   "Units in stock"
// @Param        category      formData  string  true   "Category id"
// @Param        image         formData  file    false  "Product image"
// @Success      200           {object}  domain.Product
// @Router       /api/admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	in, err := productForm(c)
	if err != nil {
		return err
	}
	image, err := imageForm(c)
	if err != nil {
		return err
	}
	product, err := h.admin.UpdateProduct(c.Request().Context(), c.Param("id"), in, image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product.
//
// @Summary      Delete product
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Message
// @Router       /api/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	msg, err := h.admin.DeleteProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}

// CreateCategory adds a category.
//
// @Summary      Create category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      categoryRequest  true  "Category name"
// @Success      201   {object}  domain.Category
// @Router       /api/admin/categories [post]
func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := h.admin.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category.
//
// @Summary      Update category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "Category name"
// @Success      200   {object}  domain.Category
// @Router       /api/admin/categories/{id} [put]
func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	var req categoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := h.admin.UpdateCategory(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category.
//
// @Summary      Delete category
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  domain.Message
// @Router       /api/admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	msg, err := h.admin.DeleteCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}

// Users lists every account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Identity
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.admin.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// User returns one account.
//
// @Summary      Get user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.Identity
// @Router       /api/admin/users/{id} [get]
func (h *AdminHandler) User(c echo.Context) error {
	user, err := h.admin.User(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser changes a user's name and admin flag.
//
// @Summary      Update user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User id"
// @Param        body  body      userUpdateRequest  true  "Fields to change"
// @Success      200   {object}  domain.Identity
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	var req userUpdateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.admin.UpdateUser(c.Request().Context(), c.Param("id"), domain.UserUpdate{
		Name:    req.Name,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account.
//
// @Summary      Delete user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.Message
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	msg, err := h.admin.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msg)
}

// Orders lists every order.
//
// @Summary      List orders
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /api/admin/orders [get]
func (h *AdminHandler) Orders(c echo.Context) error {
	orders, err := h.admin.Orders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus confirms, ships or cancels an order.
//
// @Summary      Change order status
// @Tags         admin
// @Produce      json
// @Param        id      path      string  true  "Order id"
// @Param        action  path      string  true  "confirm, ship or cancel"
// @Success      200     {object}  orderStatusResponse
// @Failure      400     {object}  map[string]string
// @Router       /api/admin/orders/{id}/{action} [put]
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	id := c.Param("id")
	status, err := h.admin.UpdateOrderStatus(c.Request().Context(), id, domain.AdminOrderAction(c.Param("action")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderStatusResponse{ID: id, Status: status})
}

func productForm(c echo.Context) (domain.ProductInput, error) {
	in := domain.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Image:       c.FormValue("imageUrl"),
	}
	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "price must be a number")
		}
		in.Price = price
	}
	if v := c.FormValue("countInStock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, echo.NewHTTPError(http.StatusBadRequest, "countInStock must be an integer")
		}
		in.CountInStock = n
	}
	return in, nil
}

// imageForm reads the optional "image" file. A missing file is not an error.
func imageForm(c echo.Context) (*domain.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	if fh.Size > maxImageSize {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("image exceeds %d bytes", maxImageSize))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	return &domain.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
