// Package upload 提供本地磁盘的文件存储
// 用于后台管理端上传图书封面、作者头像等图片资源
package upload

import (
	"fmt"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 允许上传的图片扩展名
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store 本地文件存储
// 设计说明：
//  1. 文件保存在Dir目录，文件名为 file-<时间戳>-<随机数><扩展名>
//     （保留原扩展名，避免同名覆盖）
//  2. BaseURL用于拼出对外可访问的URL（由/uploads静态路由提供服务）
//  3. MaxSize限制单个文件大小（字节）
type Store struct {
	dir     string
	baseURL string
	maxSize int64
}

// NewStore 创建文件存储（目录不存在时自动创建）
func NewStore(dir, baseURL string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Dir 返回存储目录（用于注册静态文件路由）
func (s *Store) Dir() string {
	return s.dir
}

// Save 保存上传的文件，返回对外可访问的URL
func (s *Store) Save(file *multipart.FileHeader) (string, error) {
	// 1. 大小校验
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", apperrors.New(apperrors.ErrCodeInvalidParams,
			fmt.Sprintf("文件大小超过限制（最大%dMB）", s.maxSize/(1<<20)))
	}

	// 2. 扩展名校验（只允许图片）
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		return "", apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的文件类型，仅允许图片")
	}

	// 3. 生成唯一文件名：file-<毫秒时间戳>-<9位随机数><扩展名>
	name := fmt.Sprintf("file-%d-%09d%s", time.Now().UnixMilli(), rand.Intn(1e9), ext)

	// 4. 写入磁盘
	src, err := file.Open()
	if err != nil {
		return "", apperrors.Wrap(err, "读取上传文件失败")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", apperrors.Wrap(err, "保存上传文件失败")
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", apperrors.Wrap(err, "写入上传文件失败")
	}

	return s.baseURL + "/" + name, nil
}
