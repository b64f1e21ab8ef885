// Package validate 在 gin 的 validator 上注册业务校验规则
package validate

import (
	"sync"

	"campus-activity/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var once sync.Once

// Init 注册 activity_status、registration_status、role 三个 tag，可重复调用
func Init() error {
	var err error
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator 不是 validator/v10")
			return
		}
		err = Register(v)
	})
	return err
}

func Register(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"activity_status":     model.ValidActivityStatus,
		"registration_status": model.ValidRegistrationStatus,
		"role":                model.ValidRole,
	}
	for tag, fn := range rules {
		fn := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			return errors.Wrapf(err, "注册校验规则 %s 失败", tag)
		}
	}
	return nil
}
