package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshop/pkg/response"
	"github.com/xiebiao/bookshop/pkg/upload"
)

// UploadHandler 文件上传HTTP处理器(封面图等)
type UploadHandler struct {
	store *upload.Store
}

// NewUploadHandler 创建上传处理器
func NewUploadHandler(store *upload.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload 上传文件
// @Summary      上传文件
// @Description  multipart表单,字段名file;仅允许图片扩展名,返回可访问URL
// @Tags         上传
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "文件"
// @Success      200 {object} response.Response
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithCode(c, 40900, "缺少文件: "+err.Error())
		return
	}

	url, err := h.store.Save(file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"url": url})
}
