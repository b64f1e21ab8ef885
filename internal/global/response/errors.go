package response

import "net/http"

// 错误码：与 HTTP 对齐的三位码，以及 5 位业务码（前三位为对应 HTTP 状态）
var (
	ErrInvalidRequest = newError(400, http.StatusBadRequest, "请求参数错误")
	ErrInvalidRating  = newError(40001, http.StatusBadRequest, "评分必须在1到5之间")
	ErrInvalidTime    = newError(40002, http.StatusBadRequest, "活动时间不合法")
	ErrWeakPassword   = newError(40003, http.StatusBadRequest, "密码强度不足")

	ErrUnauthorized    = newError(401, http.StatusUnauthorized, "未登录")
	ErrTokenInvalid    = newError(40101, http.StatusUnauthorized, "Token无效或已过期")
	ErrTokenRevoked    = newError(40102, http.StatusUnauthorized, "Token已注销")
	ErrInvalidPassword = newError(40103, http.StatusUnauthorized, "邮箱或密码错误")

	ErrForbidden    = newError(403, http.StatusForbidden, "无权限")
	ErrUserDisabled = newError(40301, http.StatusForbidden, "账号已被禁用")

	ErrNotFound             = newError(404, http.StatusNotFound, "资源不存在")
	ErrActivityNotFound     = newError(40401, http.StatusNotFound, "活动不存在")
	ErrRegistrationNotFound = newError(40402, http.StatusNotFound, "报名记录不存在")
	ErrUserNotFound         = newError(40403, http.StatusNotFound, "用户不存在")
	ErrCategoryNotFound     = newError(40404, http.StatusNotFound, "分类不存在")

	ErrAlreadyExists         = newError(409, http.StatusConflict, "资源已存在")
	ErrDuplicateRegistration = newError(40901, http.StatusConflict, "已报名该活动")
	ErrDuplicateFeedback     = newError(40902, http.StatusConflict, "已评价过该活动")
	ErrTimeConflict          = newError(40903, http.StatusConflict, "活动时间冲突")
	ErrCapacityExceeded      = newError(40904, http.StatusConflict, "活动名额已满")
	ErrCategoryInUse         = newError(40905, http.StatusConflict, "分类下仍有活动")
	ErrCapacityBelowEnrolled = newError(40906, http.StatusConflict, "容量不能小于已报名人数")

	ErrUnprocessable        = newError(422, http.StatusUnprocessableEntity, "当前状态不允许该操作")
	ErrActivityNotPublished = newError(42201, http.StatusUnprocessableEntity, "活动未发布")
	ErrIllegalTransition    = newError(42202, http.StatusUnprocessableEntity, "非法的状态变更")
	ErrReviewRequired       = newError(42203, http.StatusUnprocessableEntity, "活动尚未审核通过")

	ErrServerInternal = newError(500, http.StatusInternalServerError, "服务器内部错误")
	ErrDatabase       = newError(50001, http.StatusInternalServerError, "数据库错误")
	ErrStorage        = newError(50002, http.StatusInternalServerError, "文件存储错误")
)
