package domain

type Assignment struct {
	ShiftID    string `json:"shiftId"`
	EmployeeID string `json:"employeeId"`
}

type UnresolvedReason string

const (
	UnresolvedInvalidTime         UnresolvedReason = "INVALID_TIME"
	UnresolvedExcessiveHours      UnresolvedReason = "EXCESSIVE_HOURS"
	UnresolvedNoQualifiedEmployee UnresolvedReason = "NO_QUALIFIED_EMPLOYEE"
	UnresolvedRestPeriod          UnresolvedReason = "REST_PERIOD"
	UnresolvedWeeklyCap           UnresolvedReason = "WEEKLY_CAP"
	UnresolvedDeadlineExceeded    UnresolvedReason = "DEADLINE_EXCEEDED"
	UnresolvedBudgetExhausted     UnresolvedReason = "BUDGET_EXHAUSTED"
)

// UnresolvedShift 表示无法找到合规员工的开放班次
type UnresolvedShift struct {
	ShiftID string           `json:"shiftId"`
	Reason  UnresolvedReason `json:"reason"`
}
