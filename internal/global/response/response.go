package response

import (
	"fmt"
	"net/http"

	"campus-activity/internal/global/sentry"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
)

// ResponseBody 统一响应信封
type ResponseBody struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Origin  string `json:"origin,omitempty"`
}

const exposeOriginKey = "response.exposeOrigin"

// ExposeOrigin 调试模式下挂载，失败响应附带错误来源
func ExposeOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(exposeOriginKey, true)
		c.Next()
	}
}

// Success 返回成功响应，data 可省略
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{
		Code:    200,
		Message: "success",
	}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(http.StatusOK, body)
}

// Fail 返回失败响应，非 *Error 的错误按服务器内部错误处理
func Fail(c *gin.Context, err error) {
	var e *Error
	if !pkgerrors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}
	c.Set(ErrorContextKey, e)

	body := ResponseBody{
		Code:    e.Code,
		Message: e.Message,
	}
	if c.GetBool(exposeOriginKey) {
		body.Origin = e.Origin
	}
	if e.Status() >= http.StatusInternalServerError {
		sentry.CaptureException(c, e)
	}
	c.AbortWithStatusJSON(e.Status(), body)
}

// Recovery 捕获 panic 并转换为统一响应，需在 defer 中调用
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		var err error
		switch v := r.(type) {
		case error:
			err = v
		default:
			err = fmt.Errorf("%v", v)
		}
		Fail(c, ErrServerInternal.WithOrigin(err))
	}
}
