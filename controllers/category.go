package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amikke/pantry-api/service"
)

type categoryController struct {
	categories service.CategoryService
}

func NewCategoryController(categories service.CategoryService) Controller {
	return &categoryController{
		categories: categories,
	}
}

func (cc *categoryController) Register(r *gin.Engine) {
	r.GET("/api/categories", cc.List)
}

func (cc *categoryController) List(c *gin.Context) {
	categories, err := cc.categories.ListCategories(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
