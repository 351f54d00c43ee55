package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// ProductsHandler exposes admin catalog management.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// Create handles POST /admin/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	var req dto.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	product := &domain.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Active:      true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	created, err := h.products.Create(c.UserContext(), actor, product)
	if err != nil {
		if err == repository.ErrDuplicate {
			return apperrors.NewConflict("sku already in use", nil)
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": productResponse(created)})
}

// List handles GET /admin/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Limit:  parseIntQuery(c, "page_size", 50),
		Offset: (parseIntQuery(c, "page", 1) - 1) * parseIntQuery(c, "page_size", 50),
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	products, err := h.products.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponses(products)})
}

// Get handles GET /admin/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// Update handles PUT /admin/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)

	product, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	var req dto.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	updated, err := h.products.Update(c.UserContext(), actor, product)
	if err != nil {
		if err == repository.ErrDuplicate {
			return apperrors.NewConflict("sku already in use", nil)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": productResponse(updated)})
}

// Delete handles DELETE /admin/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	actor, _ := auth.PrincipalFromContext(c)
	if err := h.products.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func productResponse(product *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func productResponses(products []domain.Product) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, productResponse(&products[i]))
	}
	return resp
}
