package domain

import (
	"errors"
	"fmt"
)

// InputError 表示调用方提交的数据格式错误或缺少必填字段
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewInputError(field, format string, args ...any) *InputError {
	return &InputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ErrComputationFault 表示计算过程中出现了不应出现的内部状态（如数值溢出）
var ErrComputationFault = errors.New("计算过程出现内部错误")

func ComputationFault(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrComputationFault, fmt.Sprintf(format, args...))
}

func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
