package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器(Gateway风格)
// 响应约定:
// - 列表:裸JSON数组 + X-Total-Count头
// - 详情:裸JSON对象;不存在时404 + {}
// - 创建:201 + 创建后的对象
// - PATCH:部分更新,返回更新后的完整对象
type BookHandler struct {
	useCase *appbook.UseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(useCase *appbook.UseCase) *BookHandler {
	return &BookHandler{useCase: useCase}
}

// List 图书列表
// @Summary      图书列表
// @Description  支持过滤(author_id/category_ids/price_gte/price_lte/q)、排序(_sort/_order)、分页(_start/_end);分类过滤为AND语义
// @Tags         图书
// @Produce      json
// @Success      200 {array} dto.BookResponse
// @Header       200 {string} X-Total-Count "过滤后的总数"
// @Router       /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	q := dto.ParseListQuery(c)
	params := book.ListParams{
		AuthorID:    dto.ParseUintQuery(c, "author_id"),
		CategoryIDs: dto.ParseUintSliceQuery(c, "category_ids"),
		Keyword:     q.Keyword,
		PriceGTE:    dto.ParseInt64Query(c, "price_gte"),
		PriceLTE:    dto.ParseInt64Query(c, "price_lte"),
		StockLTE:    dto.ParseIntQuery(c, "stock_lte"),
		SortBy:      q.SortBy,
		Order:       q.Order,
		Start:       q.Start,
		End:         q.End,
	}

	books, total, err := h.useCase.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	dto.SetTotalCount(c, total)
	c.JSON(http.StatusOK, dto.ToBookResponses(books))
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} map[string]interface{} "不存在时返回{}"
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	b, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(b))
}

// Create 创建图书(后台)
// @Summary      创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	publishedDate, err := req.ParsePublishedDate()
	if err != nil {
		response.ErrorWithCode(c, 40900, "出版日期格式错误(应为YYYY-MM-DD)")
		return
	}

	b, err := h.useCase.Create(c.Request.Context(), appbook.CreateRequest{
		Title:         req.Title,
		AuthorID:      req.AuthorID,
		CategoryIDs:   req.CategoryIDs,
		PublishedDate: publishedDate,
		Price:         req.Price,
		Stock:         req.Stock,
		CoverURL:      req.CoverImage,
		Description:   req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookResponse(b))
}

// Patch 部分更新图书(后台)
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.PatchBookRequest true "要更新的字段"
// @Success      200 {object} dto.BookResponse
// @Router       /api/books/{id} [patch]
func (h *BookHandler) Patch(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	// json解码无法区分"字段缺失"和"空数组",
	// 这里先解到RawMessage map判断category_ids是否出现
	body, err := c.GetRawData()
	if err != nil {
		response.ErrorWithCode(c, 40901, "读取请求体失败")
		return
	}

	var req dto.PatchBookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	_, req.HasCategoryIDs = fields["category_ids"]

	patch, err := req.ToPatch()
	if err != nil {
		response.ErrorWithCode(c, 40900, "出版日期格式错误(应为YYYY-MM-DD)")
		return
	}

	b, err := h.useCase.Patch(c.Request.Context(), id, patch)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(b))
}

// Delete 删除图书(后台)
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} map[string]interface{} "{}"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
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

// Like 点赞
// @Summary      给图书点赞
// @Description  点赞数+1,返回更新后的点赞数;无需登录
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} map[string]int "{\"likes\": 10}"
// @Router       /api/books/{id}/like [post]
func (h *BookHandler) Like(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	likes, err := h.useCase.Like(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
