package compliance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/policy"
)

func ptr(s string) *string {
	return &s
}

func employee(id string, cap float64, skills ...string) domain.Employee {
	return domain.Employee{ID: id, Name: id, WeeklyHourCap: cap, HourlyRate: 10, Skills: skills}
}

func shift(id, employeeID, start, end string) domain.Shift {
	s := domain.Shift{ID: id, Start: start, End: end}
	if employeeID != "" {
		s.EmployeeID = ptr(employeeID)
	}
	return s
}

func types(result *domain.ValidationResult) []domain.ViolationType {
	ts := []domain.ViolationType{}
	for _, v := range result.Violations {
		ts = append(ts, v.Type)
	}
	return ts
}

func TestValidate_ValidSchedule(t *testing.T) {
	employees := []domain.Employee{employee("e1", 40), employee("e2", 40)}
	shifts := []domain.Shift{
		shift("s1", "e1", "2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z"),
		shift("s2", "e1", "2024-03-05T08:00:00Z", "2024-03-05T16:00:00Z"),
		shift("s3", "e2", "2024-03-04T16:00:00Z", "2024-03-05T00:00:00Z"),
	}

	result, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 3, result.Summary.TotalShifts)
	assert.Equal(t, 0, result.Summary.TotalViolations)
}

func TestValidate_PerShiftRules(t *testing.T) {
	employees := []domain.Employee{employee("e1", 100), employee("e2", 100), employee("e3", 100), employee("e4", 100)}
	shifts := []domain.Shift{
		shift("missing", "ghost", "2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z"),
		shift("bad-time", "e1", "后天早上", "2024-03-04T16:00:00Z"),
		shift("reversed", "e2", "2024-03-04T16:00:00Z", "2024-03-04T08:00:00Z"),
		shift("long", "e3", "2024-03-04T06:00:00Z", "2024-03-04T19:00:00Z"),
		shift("short", "e4", "2024-03-04T08:00:00Z", "2024-03-04T09:00:00Z"),
	}

	result, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.Equal(t, []domain.ViolationType{
		domain.ViolationEmployeeNotFound,
		domain.ViolationInvalidTime,
		domain.ViolationInvalidTimeOrder,
		domain.ViolationExcessiveHours,
		domain.ViolationShortShift,
	}, types(result))

	assert.Equal(t, "missing", result.Violations[0].ShiftID)
	assert.Equal(t, "ghost", result.Violations[0].EmployeeID)
	assert.Equal(t, domain.SeverityMedium, result.Violations[4].Severity)
	assert.Equal(t, 4, result.Summary.HighSeverityViolations)
	assert.Equal(t, 1, result.Summary.MediumSeverityViolations)
}

func TestValidate_ShortShiftOnlyIsStillValid(t *testing.T) {
	employees := []domain.Employee{employee("e1", 40)}
	shifts := []domain.Shift{shift("s1", "e1", "2024-03-04T08:00:00Z", "2024-03-04T09:30:00Z")}

	result, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	assert.True(t, result.IsValid, "MEDIUM 级别的违规不影响合法性")
	assert.Equal(t, []domain.ViolationType{domain.ViolationShortShift}, types(result))
}

func TestValidate_RestPeriodViolation(t *testing.T) {
	employees := []domain.Employee{employee("e1", 40)}
	shifts := []domain.Shift{
		shift("s2", "e1", "2024-03-05T06:00:00Z", "2024-03-05T14:00:00Z"),
		shift("s1", "e1", "2024-03-04T12:00:00Z", "2024-03-04T20:00:00Z"),
	}

	result, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	require.Equal(t, []domain.ViolationType{domain.ViolationRestPeriod}, types(result))
	assert.Equal(t, domain.SeverityHigh, result.Violations[0].Severity)
	assert.Equal(t, "s2", result.Violations[0].ShiftID)
	assert.Equal(t, "e1", result.Violations[0].EmployeeID)
}

func TestValidate_RestPeriodExactlyElevenHours(t *testing.T) {
	employees := []domain.Employee{employee("e1", 40)}
	shifts := []domain.Shift{
		shift("s1", "e1", "2024-03-04T12:00:00Z", "2024-03-04T20:00:00Z"),
		shift("s2", "e1", "2024-03-05T07:00:00Z", "2024-03-05T15:00:00Z"),
	}

	result, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Violations)
}

func TestValidate_MultipleShiftsSameDay(t *testing.T) {
	employees := []domain.Employee{employee("e1", 40)}
	shifts := []domain.Shift{
		shift("s1", "e1", "2024-03-04T00:00:00Z", "2024-03-04T03:00:00Z"),
		shift("s2", "e1", "2024-03-04T18:00:00Z", "2024-03-04T21:00:00Z"),
	}

	result, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	assert.Equal(t, []domain.ViolationType{domain.ViolationMultipleShifts}, types(result))
	assert.True(t, result.IsValid)
}

func TestValidate_WeeklyCapExceeded(t *testing.T) {
	employees := []domain.Employee{employee("e1", 16)}
	shifts := []domain.Shift{
		shift("mon", "e1", "2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z"),
		shift("tue", "e1", "2024-03-05T08:00:00Z", "2024-03-05T16:00:00Z"),
		shift("wed", "e1", "2024-03-06T08:00:00Z", "2024-03-06T12:00:00Z"),
		// 下一个 ISO 周，不计入本周
		shift("next-mon", "e1", "2024-03-11T08:00:00Z", "2024-03-11T16:00:00Z"),
	}

	result, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	require.Equal(t, []domain.ViolationType{domain.ViolationWeeklyCapExceeded}, types(result))
	assert.Contains(t, result.Violations[0].Message, "第 10 周")
	assert.False(t, result.IsValid)
}

func TestValidate_SkillMismatchAndUnassigned(t *testing.T) {
	employees := []domain.Employee{employee("e1", 40, "cashier")}
	cook := shift("s1", "e1", "2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z")
	cook.RequiredSkill = "cook"
	open := shift("s2", "", "2024-03-05T08:00:00Z", "2024-03-05T16:00:00Z")

	result, err := Validate([]domain.Shift{cook, open}, employees, policy.Default())
	require.NoError(t, err)

	assert.Equal(t, []domain.ViolationType{domain.ViolationSkillMismatch, domain.ViolationUnassignedShift}, types(result))
	assert.Equal(t, domain.SeverityLow, result.Violations[1].Severity)
	assert.Equal(t, 1, result.Summary.LowSeverityViolations)
	assert.False(t, result.IsValid)
}

func TestValidate_DuplicateShiftIDsValidateIndependently(t *testing.T) {
	employees := []domain.Employee{employee("e1", 40), employee("e2", 40)}
	shifts := []domain.Shift{
		shift("dup", "e1", "2024-03-04T08:00:00Z", "2024-03-04T16:00:00Z"),
		shift("dup", "e2", "2024-03-04T16:00:00Z", "2024-03-04T16:00:00Z"),
		shift("other", "e2", "2024-03-06T08:00:00Z", "2024-03-06T16:00:00Z"),
	}

	result, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	require.Equal(t, []domain.ViolationType{domain.ViolationInvalidTimeOrder}, types(result))
	assert.Equal(t, "e2", result.Violations[0].EmployeeID)
	assert.Equal(t, 3, result.Summary.TotalShifts)
}

func TestValidate_CustomPolicy(t *testing.T) {
	p := policy.Default()
	p.MinRestHours = 8

	employees := []domain.Employee{employee("e1", 40)}
	shifts := []domain.Shift{
		shift("s1", "e1", "2024-03-04T12:00:00Z", "2024-03-04T20:00:00Z"),
		shift("s2", "e1", "2024-03-05T06:00:00Z", "2024-03-05T14:00:00Z"),
	}

	result, err := Validate(shifts, employees, p)
	require.NoError(t, err)
	assert.Empty(t, result.Violations)
}

func TestValidate_StructuralErrors(t *testing.T) {
	_, err := Validate(nil, []domain.Employee{}, policy.Default())
	assert.True(t, domain.IsInputError(err))

	_, err = Validate([]domain.Shift{}, nil, policy.Default())
	assert.True(t, domain.IsInputError(err))

	_, err = Validate([]domain.Shift{}, []domain.Employee{employee("e1", 40), employee("e1", 20)}, policy.Default())
	assert.True(t, domain.IsInputError(err))
}

func TestValidate_IsValidMatchesHighSeverity(t *testing.T) {
	employees := []domain.Employee{employee("e1", 8), employee("e2", 40)}
	schedules := [][]domain.Shift{
		{},
		{shift("s1", "e1", "2024-03-04T08:00:00Z", "2024-03-04T17:00:00Z")},
		{shift("s1", "e2", "2024-03-04T08:00:00Z", "2024-03-04T09:00:00Z")},
		{shift("s1", "", "2024-03-04T08:00:00Z", "2024-03-04T09:00:00Z")},
		{
			shift("s1", "e2", "2024-03-04T08:00:00Z", "2024-03-04T12:00:00Z"),
			shift("s2", "e2", "2024-03-04T13:00:00Z", "2024-03-04T17:00:00Z"),
		},
	}

	for _, shifts := range schedules {
		result, err := Validate(shifts, employees, policy.Default())
		require.NoError(t, err)

		high := false
		for _, v := range result.Violations {
			if v.Severity == domain.SeverityHigh {
				high = true
			}
		}
		assert.Equal(t, !high, result.IsValid)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	employees := []domain.Employee{employee("e1", 8), employee("e2", 40)}
	shifts := []domain.Shift{
		shift("s1", "e2", "2024-03-04T08:00:00Z", "2024-03-04T12:00:00Z"),
		shift("s2", "e2", "2024-03-04T13:00:00Z", "2024-03-04T17:00:00Z"),
		shift("s3", "e1", "2024-03-04T08:00:00Z", "2024-03-04T17:00:00Z"),
	}

	first, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)
	second, err := Validate(shifts, employees, policy.Default())
	require.NoError(t, err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	assert.Equal(t, string(a), string(b))
}
