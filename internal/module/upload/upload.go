// Package upload 活动封面上传：直传本服务或获取对象存储的预签名地址
package upload

import (
	"time"

	ctxutil "campus-activity/internal/global/context"
	"campus-activity/internal/global/logger"
	"campus-activity/internal/global/pictureBed"
	"campus-activity/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// storageError 把存储层错误转为业务错误
func storageError(err error) error {
	switch {
	case errors.Is(err, pictureBed.ErrUnsupportedType), errors.Is(err, pictureBed.ErrTooLarge):
		return response.ErrInvalidRequest.WithTips(err.Error())
	case errors.Is(err, pictureBed.ErrS3Disabled):
		return response.ErrUnprocessable.WithTips(err.Error())
	default:
		return response.ErrStorage.WithOrigin(err)
	}
}

type presignReq struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"omitempty,max=100"`
	ExpiresIn   int    `json:"expires_in" binding:"omitempty,min=60,max=3600"` // 秒
}

func (m *ModuleUpload) presign(c *gin.Context) {
	var req presignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	result, err := m.storage.PresignUpload(c.Request.Context(), pictureBed.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		ExpiresIn:   time.Duration(req.ExpiresIn) * time.Second,
	})
	if err != nil {
		response.Fail(c, storageError(err))
		return
	}
	logger.WithContext(log, c).Info("生成预签名上传地址", "key", result.FileKey)
	response.Success(c, result)
}

func (m *ModuleUpload) image(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少文件"))
		return
	}
	url, err := m.storage.SaveImage(c.Request.Context(), fileHeader)
	if err != nil {
		logger.WithContext(log, c).Error("图片保存失败", "error", err)
		response.Fail(c, storageError(err))
		return
	}
	log.Info("图片上传成功", "user_id", ctxutil.GetUserID(c), "url", url, "size", fileHeader.Size)
	response.Success(c, gin.H{"url": url})
}
