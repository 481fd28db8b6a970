package config

import "fmt"

// FieldError 提供字段路径与错误原因，便于宿主应用向用户反馈。
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// newFieldError 创建包含字段路径与原因的 error，便于调用方定位。
func newFieldError(field, reason string) error {
	return FieldError{Field: field, Reason: reason}
}
