package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// 不带时区的时间按策略时区解析
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type Shift struct {
	ID            string  `json:"id"`
	EmployeeID    *string `json:"employeeId"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	RequiredSkill string  `json:"requiredSkill,omitempty"`
}

// IsAssigned 判断班次是否已经分配给某个员工
func (s *Shift) IsAssigned() bool {
	return s.EmployeeID != nil && *s.EmployeeID != ""
}

func (s *Shift) AssignedTo() string {
	if s.EmployeeID == nil {
		return ""
	}
	return *s.EmployeeID
}

// Window 解析班次的开始和结束时间，并转换到 loc 时区
func (s *Shift) Window(loc *time.Location) (time.Time, time.Time, error) {
	start, err := ParseInstant(s.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("开始时间 %q 无法解析: %w", s.Start, err)
	}
	end, err := ParseInstant(s.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("结束时间 %q 无法解析: %w", s.End, err)
	}
	return start, end, nil
}

// Date 返回班次开始时间所在的日期
func (s *Shift) Date(loc *time.Location) (string, error) {
	start, err := ParseInstant(s.Start, loc)
	if err != nil {
		return "", err
	}
	return start.Format(DateLayout), nil
}

var ErrEmptyTimestamp = errors.New("时间为空")

func ParseInstant(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrEmptyTimestamp
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), nil
	}

	var lastErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
