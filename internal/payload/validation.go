package payload

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
)

// NewValidator 创建带中文错误信息的校验器，字段名使用 json 标签
func NewValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, err
	}

	return validate, trans, nil
}

// Decode 严格解析请求体，不允许未知字段和多余内容
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return domain.NewInputError("body", "请求体为空")
		case errors.As(err, &maxBytesErr):
			return domain.NewInputError("body", "请求体超过 %d 字节", maxBytesErr.Limit)
		default:
			return domain.NewInputError("body", "请求体格式错误: %v", err)
		}
	}
	if dec.More() {
		return domain.NewInputError("body", "请求体只能包含一个 JSON 对象")
	}
	return nil
}

// Translate 把校验器返回的错误转换为 InputError，只保留第一个错误使得信息更清晰
func Translate(err error, trans ut.Translator) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	fe := validationErrors[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return &domain.InputError{Field: field, Reason: fe.Translate(trans)}
}

// Check 校验请求结构体
func Check(validate *validator.Validate, trans ut.Translator, v any) error {
	if err := validate.Struct(v); err != nil {
		return Translate(err, trans)
	}
	return nil
}
