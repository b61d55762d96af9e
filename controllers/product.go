package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/amikke/pantry-api/models"
	"github.com/amikke/pantry-api/service"
)

// TODO: replace with the identity resolved by the auth middleware once the
// session integration lands.
var placeholderUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type productController struct {
	products service.ProductService
}

func NewProductController(products service.ProductService) Controller {
	return &productController{
		products: products,
	}
}

func (p *productController) Register(r *gin.Engine) {
	group := r.Group("/api/products")
	group.POST("", p.Create)
	group.GET("", p.List)
	group.GET("/:id", p.Get)
	group.PUT("/:id", p.Update)
}

func (p *productController) Create(c *gin.Context) {
	req := models.ProductCreateRequest{}
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	product, err := p.products.CreateProduct(c, placeholderUserID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

func (p *productController) List(c *gin.Context) {
	query := models.ListProductsQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		bindingError(c, err)
		return
	}

	resp, err := p.products.ListProducts(c, placeholderUserID, query.Page, query.Limit, query.Filter, query.Sort)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (p *productController) Get(c *gin.Context) {
	product, err := p.products.GetProduct(c, placeholderUserID, c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (p *productController) Update(c *gin.Context) {
	req := models.ProductUpdateRequest{}
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	product, err := p.products.UpdateProduct(c, placeholderUserID, c.Param("id"), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// bindingError reports malformed JSON or a failed schema check. Field-level
// failures carry a details map keyed by field name.
func bindingError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error": errors.Join(err, errors.New("failed to parse request")).Error(),
	})
}

// serviceError maps business errors to status codes. Unrecognized errors are
// backend failures and stay opaque to the client.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidProductID),
		errors.Is(err, service.ErrInvalidCategoryID),
		errors.Is(err, service.ErrEmptyProductName),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrDuplicateProductName),
		errors.Is(err, service.ErrInvalidFilterFormat),
		errors.Is(err, service.ErrInvalidSortFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
