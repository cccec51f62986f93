package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("date_or_empty", dateOrEmpty)
}

// dateOrEmpty YYYY-MM-DD 或空串，空串表示清除日期
func dateOrEmpty(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// ParamError 参数校验失败
type ParamError struct {
	Field string
	Rule  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("字段 [%s] 校验失败，规则 [%s]", e.Field, e.Rule)
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return &ParamError{Field: firstError.Field(), Rule: firstError.Tag()}
		}
		return err
	}
	return nil
}
