package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/bookshop/internal/application/category"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CategoryHandler 分类HTTP处理器(Gateway风格)
type CategoryHandler struct {
	useCase *appcategory.UseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(useCase *appcategory.UseCase) *CategoryHandler {
	return &CategoryHandler{useCase: useCase}
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {array} dto.CategoryResponse
// @Header       200 {string} X-Total-Count "总数"
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	q := dto.ParseListQuery(c)
	categories, total, err := h.useCase.List(c.Request.Context(), category.ListParams{
		Keyword: q.Keyword,
		SortBy:  q.SortBy,
		Order:   q.Order,
		Start:   q.Start,
		End:     q.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	dto.SetTotalCount(c, total)
	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} dto.CategoryResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	cat, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// Create 创建分类(后台)
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} dto.CategoryResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	cat, err := h.useCase.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// Patch 部分更新分类(后台)
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.PatchCategoryRequest true "要更新的字段"
// @Success      200 {object} dto.CategoryResponse
// @Router       /api/categories/{id} [patch]
func (h *CategoryHandler) Patch(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	var req dto.PatchCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	cat, err := h.useCase.Patch(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// Delete 删除分类(后台)
// @Summary      删除分类
// @Description  同时清理图书与该分类的关联
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} map[string]interface{} "{}"
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
