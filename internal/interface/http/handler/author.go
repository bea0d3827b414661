package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookshop/internal/application/author"
	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// AuthorHandler 作者HTTP处理器(Gateway风格)
type AuthorHandler struct {
	useCase *appauthor.UseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(useCase *appauthor.UseCase) *AuthorHandler {
	return &AuthorHandler{useCase: useCase}
}

// List 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Success      200 {array} dto.AuthorResponse
// @Header       200 {string} X-Total-Count "总数"
// @Router       /api/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	q := dto.ParseListQuery(c)
	authors, total, err := h.useCase.List(c.Request.Context(), author.ListParams{
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
	c.JSON(http.StatusOK, dto.ToAuthorResponses(authors))
}

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} dto.AuthorResponse
// @Router       /api/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	a, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthorResponse(a))
}

// Create 创建作者(后台)
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} dto.AuthorResponse
// @Router       /api/authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	a, err := h.useCase.Create(c.Request.Context(), req.Name, req.Nationality, req.ProfileImage)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAuthorResponse(a))
}

// Patch 部分更新作者(后台)
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Param        request body dto.PatchAuthorRequest true "要更新的字段"
// @Success      200 {object} dto.AuthorResponse
// @Router       /api/authors/{id} [patch]
func (h *AuthorHandler) Patch(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	var req dto.PatchAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	a, err := h.useCase.Patch(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthorResponse(a))
}

// Delete 删除作者(后台)
// @Summary      删除作者
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} map[string]interface{} "{}"
// @Router       /api/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
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
