package paginate

import "gorm.io/gorm"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Query 列表接口通用的分页参数
type Query struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

func (q *Query) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

func (q Query) Scope(db *gorm.DB) *gorm.DB {
	q.Normalize()
	return db.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
}

type Result[T any] struct {
	List       []T   `json:"list"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

func NewResult[T any](list []T, total int64, q Query) Result[T] {
	q.Normalize()
	if list == nil {
		list = []T{}
	}
	return Result[T]{
		List:       list,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + int64(q.PageSize) - 1) / int64(q.PageSize),
	}
}

// Find 先 Count 再分页查询，db 需已带好筛选条件；scopes 只作用于列表查询（排序、预加载）
func Find[T any](db *gorm.DB, q Query, scopes ...func(*gorm.DB) *gorm.DB) (Result[T], error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Result[T]{}, err
	}
	var list []T
	scopes = append(scopes, q.Scope)
	if err := db.Session(&gorm.Session{}).Scopes(scopes...).Find(&list).Error; err != nil {
		return Result[T]{}, err
	}
	return NewResult(list, total, q), nil
}

func OrderBy(order string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

func Preload(associations ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, a := range associations {
			db = db.Preload(a)
		}
		return db
	}
}
