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

// StorefrontHandler exposes the public catalog plus the customer-scoped
// operations (orders, profile). Public routes carry no principal; customer
// routes run behind the auth middleware.
type StorefrontHandler struct {
	products  *service.ProductService
	featured  *service.FeaturedService
	coupons   *service.CouponService
	orders    *service.OrderService
	customers *service.CustomerService
}

// NewStorefrontHandler constructs handler.
func NewStorefrontHandler(
	products *service.ProductService,
	featured *service.FeaturedService,
	coupons *service.CouponService,
	orders *service.OrderService,
	customers *service.CustomerService,
) *StorefrontHandler {
	return &StorefrontHandler{
		products:  products,
		featured:  featured,
		coupons:   coupons,
		orders:    orders,
		customers: customers,
	}
}

// ListProducts handles GET /storefront/products. Only active products are
// visible to shoppers.
func (h *StorefrontHandler) ListProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		ActiveOnly: true,
		Limit:      parseIntQuery(c, "page_size", 50),
		Offset:     (parseIntQuery(c, "page", 1) - 1) * parseIntQuery(c, "page_size", 50),
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

// GetProduct handles GET /storefront/products/:id. Inactive products are
// hidden from the storefront even when fetched by id.
func (h *StorefrontHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !product.Active {
		return apperrors.NewNotFound("product", nil)
	}
	return c.JSON(fiber.Map{"data": productResponse(product)})
}

// ListFeatured handles GET /storefront/featured.
func (h *StorefrontHandler) ListFeatured(c *fiber.Ctx) error {
	products, err := h.featured.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": productResponses(products)})
}

// CheckCoupon handles GET /storefront/coupons/:code. Only redeemability and
// discount terms are exposed, never usage counters.
func (h *StorefrontHandler) CheckCoupon(c *fiber.Ctx) error {
	coupon, err := h.coupons.Check(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CouponCheckResponse{
		Code:  coupon.Code,
		Type:  string(coupon.Type),
		Value: coupon.Value,
	}})
}

// PlaceOrder handles POST /storefront/orders.
func (h *StorefrontHandler) PlaceOrder(c *fiber.Ctx) error {
	customer, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	lines := make([]service.OrderLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, service.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order, err := h.orders.Place(c.UserContext(), customer, lines, req.CouponCode)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": orderResponse(order)})
}

// ListOrders handles GET /storefront/orders. Customers only ever see their
// own orders.
func (h *StorefrontHandler) ListOrders(c *fiber.Ctx) error {
	customer, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	limit := parseIntQuery(c, "page_size", 50)
	offset := (parseIntQuery(c, "page", 1) - 1) * limit

	orders, err := h.orders.ListForCustomer(c.UserContext(), customer.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponses(orders)})
}

// GetOrder handles GET /storefront/orders/:id.
func (h *StorefrontHandler) GetOrder(c *fiber.Ctx) error {
	customer, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	order, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	// Ownership check presents as not-found so order ids cannot be probed.
	if order.CustomerID != customer.ID {
		return apperrors.NewNotFound("order", nil)
	}
	return c.JSON(fiber.Map{"data": orderResponse(order)})
}

// Profile handles GET /storefront/profile.
func (h *StorefrontHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	customer, err := h.customers.GetByID(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// UpdateProfile handles PUT /storefront/profile.
func (h *StorefrontHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.ErrUnauthenticated
	}

	var req dto.CustomerProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	customer, err := h.customers.UpdateName(c.UserContext(), principal.ID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

func orderResponse(order *domain.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return dto.OrderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Lines:      lines,
		CouponCode: order.CouponCode,
		Subtotal:   order.Subtotal,
		Discount:   order.Discount,
		Total:      order.Total,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
	}
}

func orderResponses(orders []domain.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, orderResponse(&orders[i]))
	}
	return resp
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:          customer.ID,
		Name:        customer.Name,
		Phone:       customer.Phone,
		Status:      string(customer.Status),
		LastLoginAt: customer.LastLoginAt,
		CreatedAt:   customer.CreatedAt,
	}
}
