package domain

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	default:
		return 0
	}
}

// AtLeast 判断严重程度是否不低于 other
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

type ViolationType string

const (
	ViolationEmployeeNotFound  ViolationType = "EMPLOYEE_NOT_FOUND"
	ViolationInvalidTime       ViolationType = "INVALID_TIME"
	ViolationInvalidTimeOrder  ViolationType = "INVALID_TIME_ORDER"
	ViolationExcessiveHours    ViolationType = "EXCESSIVE_HOURS"
	ViolationShortShift        ViolationType = "SHORT_SHIFT"
	ViolationSkillMismatch     ViolationType = "SKILL_MISMATCH"
	ViolationUnassignedShift   ViolationType = "UNASSIGNED_SHIFT"
	ViolationMultipleShifts    ViolationType = "MULTIPLE_SHIFTS"
	ViolationRestPeriod        ViolationType = "REST_PERIOD_VIOLATION"
	ViolationWeeklyCapExceeded ViolationType = "WEEKLY_CAP_EXCEEDED"
)

type Violation struct {
	Type       ViolationType `json:"type"`
	Message    string        `json:"message"`
	Severity   Severity      `json:"severity"`
	EmployeeID string        `json:"employeeId,omitempty"`
	ShiftID    string        `json:"shiftId,omitempty"`
}

type ValidationSummary struct {
	TotalShifts              int `json:"totalShifts"`
	TotalViolations          int `json:"totalViolations"`
	HighSeverityViolations   int `json:"highSeverityViolations"`
	MediumSeverityViolations int `json:"mediumSeverityViolations"`
	LowSeverityViolations    int `json:"lowSeverityViolations"`
}

type ValidationResult struct {
	IsValid    bool              `json:"isValid"`
	Violations []Violation       `json:"violations"`
	Summary    ValidationSummary `json:"summary"`
}

// NewValidationResult 根据违规列表计算汇总信息
func NewValidationResult(totalShifts int, violations []Violation) *ValidationResult {
	if violations == nil {
		violations = []Violation{}
	}

	summary := ValidationSummary{
		TotalShifts:     totalShifts,
		TotalViolations: len(violations),
	}
	for _, v := range violations {
		switch v.Severity {
		case SeverityHigh:
			summary.HighSeverityViolations++
		case SeverityMedium:
			summary.MediumSeverityViolations++
		case SeverityLow:
			summary.LowSeverityViolations++
		}
	}

	return &ValidationResult{
		IsValid:    summary.HighSeverityViolations == 0,
		Violations: violations,
		Summary:    summary,
	}
}

// Count 统计某种类型的违规数量
func (r *ValidationResult) Count(t ViolationType) int {
	n := 0
	for _, v := range r.Violations {
		if v.Type == t {
			n++
		}
	}
	return n
}
