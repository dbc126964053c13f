package domain

import "time"

type AuditEventType string

const (
	AuditValidateSchedule      AuditEventType = "validate_schedule"
	AuditCalculateScheduleCost AuditEventType = "calculate_schedule_cost"
	AuditSuggestSchedule       AuditEventType = "suggest_schedule"
)

// AuditEvent 记录一次计算的输入摘要和结果摘要，不包含完整的请求体
type AuditEvent struct {
	ID        string         `json:"id"`
	Type      AuditEventType `json:"type"`
	RequestID string         `json:"requestId"`
	Digest    string         `json:"digest"`
	Data      any            `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
}

type ValidationAuditData struct {
	IsValid         bool `json:"isValid"`
	TotalShifts     int  `json:"totalShifts"`
	TotalViolations int  `json:"totalViolations"`
}

type CostAuditData struct {
	TotalCost     float64 `json:"totalCost"`
	EmployeeCount int     `json:"employeeCount"`
}

type SuggestionAuditData struct {
	Assigned   int     `json:"assigned"`
	Unresolved int     `json:"unresolved"`
	IsValid    bool    `json:"isValid"`
	TotalCost  float64 `json:"totalCost"`
}
