package inventory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/domain"
	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

type InventoryHandlers struct {
	*domain.BaseHandler
}

func NewInventoryHandlers(base *domain.BaseHandler) *InventoryHandlers {
	return &InventoryHandlers{BaseHandler: base}
}

type pageData struct {
	Products   []models.Product
	Categories []models.Category
	Movements  []models.StockMovement
	Search     string
}

func (h *InventoryHandlers) ShowInventoryPage(c *gin.Context) {
	ctx := c.Request.Context()
	data := pageData{Search: c.Query("name")}

	var err error
	if data.Search != "" {
		data.Products, err = h.Backend.SearchProducts(ctx, data.Search)
	} else {
		data.Products, err = h.Backend.ListProducts(ctx)
	}
	if err != nil {
		h.HandleError(c, err, "/")
		return
	}

	if categories, err := h.Backend.ListCategories(ctx); err == nil {
		data.Categories = categories
	} else {
		h.Logger.Warn("Category list unavailable", zap.Error(err))
	}
	if movements, err := h.Backend.GetRecentStockMovements(ctx, "", 20); err == nil {
		data.Movements = movements
	} else {
		h.Logger.Warn("Recent movements unavailable", zap.Error(err))
	}

	h.RenderPage(c, "CessionDesk - "+h.I18n.T("inventory.title", nil), "Inventory", "inventory", data)
}

func (h *InventoryHandlers) CreateProductHandler(c *gin.Context) {
	purchasePrice, _ := strconv.ParseFloat(c.PostForm("purchasePrice"), 64)
	sellingPrice, _ := strconv.ParseFloat(c.PostForm("sellingPrice"), 64)
	quantity, _ := strconv.Atoi(c.PostForm("quantity"))

	product := models.Product{
		Name:          c.PostForm("name"),
		CategoryID:    c.PostForm("categoryId"),
		PurchasePrice: purchasePrice,
		SellingPrice:  sellingPrice,
		Quantity:      quantity,
		Description:   c.PostForm("description"),
	}

	if _, err := h.Backend.CreateProduct(c.Request.Context(), product); err != nil {
		h.HandleError(c, err, "/inventory")
		return
	}
	c.Redirect(http.StatusSeeOther, "/inventory")
}

// UpdateProductHandler adjusts a product's prices and stock level.
// Fields left blank keep their stored value.
func (h *InventoryHandlers) UpdateProductHandler(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	existing, err := h.Backend.GetProduct(ctx, id)
	if err != nil {
		h.HandleError(c, err, "/inventory")
		return
	}

	product := *existing
	if v := c.PostForm("name"); v != "" {
		product.Name = v
	}
	if v := c.PostForm("categoryId"); v != "" {
		product.CategoryID = v
	}
	if v := c.PostForm("description"); v != "" {
		product.Description = v
	}
	if v := c.PostForm("purchasePrice"); v != "" {
		product.PurchasePrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.PostForm("sellingPrice"); v != "" {
		product.SellingPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.PostForm("quantity"); v != "" {
		product.Quantity, _ = strconv.Atoi(v)
	}

	if _, err := h.Backend.UpdateProduct(ctx, id, product); err != nil {
		h.HandleError(c, err, "/inventory")
		return
	}
	c.Redirect(http.StatusSeeOther, "/inventory")
}

func (h *InventoryHandlers) DeleteProductHandler(c *gin.Context) {
	if err := h.Backend.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/inventory")
		return
	}
	c.Redirect(http.StatusSeeOther, "/inventory")
}

func (h *InventoryHandlers) CreateCategoryHandler(c *gin.Context) {
	category := models.Category{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	if _, err := h.Backend.CreateCategory(c.Request.Context(), category); err != nil {
		h.HandleError(c, err, "/inventory")
		return
	}
	c.Redirect(http.StatusSeeOther, "/inventory")
}

// UpdateCategoryHandler renames a category. Fields left blank keep
// their stored value.
func (h *InventoryHandlers) UpdateCategoryHandler(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	category := models.Category{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	if category.Name == "" || category.Description == "" {
		if existing, err := h.Backend.GetCategory(ctx, id); err == nil {
			if category.Name == "" {
				category.Name = existing.Name
			}
			if category.Description == "" {
				category.Description = existing.Description
			}
		}
	}

	if _, err := h.Backend.UpdateCategory(ctx, id, category); err != nil {
		h.HandleError(c, err, "/inventory")
		return
	}
	c.Redirect(http.StatusSeeOther, "/inventory")
}

func (h *InventoryHandlers) DeleteCategoryHandler(c *gin.Context) {
	if err := h.Backend.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err, "/inventory")
		return
	}
	c.Redirect(http.StatusSeeOther, "/inventory")
}

func (h *InventoryHandlers) RecordMovementHandler(c *gin.Context) {
	quantity, _ := strconv.Atoi(c.PostForm("quantity"))
	sellingPrice, _ := strconv.ParseFloat(c.PostForm("sellingPriceAtSale"), 64)

	movement := models.StockMovement{
		ProductID:          c.PostForm("productId"),
		Quantity:           quantity,
		SellingPriceAtSale: sellingPrice,
		Notes:              c.PostForm("notes"),
	}

	if _, err := h.Backend.RecordStockMovement(c.Request.Context(), movement); err != nil {
		h.HandleError(c, err, "/inventory")
		return
	}
	h.Notifier.Success(h.I18n.T("inventory.movementRecorded", nil))
	c.Redirect(http.StatusSeeOther, "/inventory")
}
