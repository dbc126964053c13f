package compliance

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/policy"
)

// timedShift 是时间已经解析成功的班次
type timedShift struct {
	shift *domain.Shift
	start time.Time
	end   time.Time
}

func (ts timedShift) duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Validate 校验排班结果是否满足劳动法相关约束
// 业务规则问题以 Violation 的形式返回，只有输入本身不合法时才返回 error
func Validate(shifts []domain.Shift, employees []domain.Employee, p policy.Policy) (*domain.ValidationResult, error) {
	if shifts == nil {
		return nil, domain.NewInputError("shifts", "缺少班次列表")
	}
	if employees == nil {
		return nil, domain.NewInputError("employees", "缺少员工列表")
	}

	index, err := domain.IndexEmployees(employees)
	if err != nil {
		return nil, err
	}

	violations := []domain.Violation{}
	byEmployee := make(map[string][]timedShift)

	// 逐个班次检查
	for i := range shifts {
		shift := &shifts[i]
		vs, ts, ok := checkShift(shift, index, p)
		violations = append(violations, vs...)
		if ok {
			byEmployee[shift.AssignedTo()] = append(byEmployee[shift.AssignedTo()], ts)
		}
	}

	// 按员工检查跨班次的规则
	employeeIDs := make([]string, 0, len(byEmployee))
	for id := range byEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	slices.Sort(employeeIDs)

	for _, id := range employeeIDs {
		employee := index[id]
		group := byEmployee[id]
		slices.SortStableFunc(group, func(a, b timedShift) int {
			if c := a.start.Compare(b.start); c != 0 {
				return c
			}
			return strings.Compare(a.shift.ID, b.shift.ID)
		})

		violations = append(violations, checkMultipleShifts(employee, group, p)...)
		violations = append(violations, checkRestPeriods(employee, group, p)...)
		violations = append(violations, checkWeeklyCap(employee, group, p)...)
	}

	return domain.NewValidationResult(len(shifts), violations), nil
}

// checkShift 检查单个班次，ok 表示该班次可以参与跨班次规则的检查
func checkShift(shift *domain.Shift, index map[string]*domain.Employee, p policy.Policy) ([]domain.Violation, timedShift, bool) {
	violations := []domain.Violation{}
	ok := true

	var employee *domain.Employee
	if shift.IsAssigned() {
		employee = index[shift.AssignedTo()]
		if employee == nil {
			violations = append(violations, domain.Violation{
				Type:       domain.ViolationEmployeeNotFound,
				Message:    fmt.Sprintf("班次 %s 引用的员工 %s 不存在", shift.ID, shift.AssignedTo()),
				Severity:   domain.SeverityHigh,
				EmployeeID: shift.AssignedTo(),
				ShiftID:    shift.ID,
			})
			ok = false
		}
	} else {
		violations = append(violations, domain.Violation{
			Type:     domain.ViolationUnassignedShift,
			Message:  fmt.Sprintf("班次 %s 尚未分配员工", shift.ID),
			Severity: domain.SeverityLow,
			ShiftID:  shift.ID,
		})
		ok = false
	}

	employeeID := shift.AssignedTo()

	start, end, err := shift.Window(p.Location())
	if err != nil {
		violations = append(violations, domain.Violation{
			Type:       domain.ViolationInvalidTime,
			Message:    fmt.Sprintf("班次 %s 的时间无效: %v", shift.ID, err),
			Severity:   domain.SeverityHigh,
			EmployeeID: employeeID,
			ShiftID:    shift.ID,
		})
		return violations, timedShift{}, false
	}

	if !end.After(start) {
		violations = append(violations, domain.Violation{
			Type:       domain.ViolationInvalidTimeOrder,
			Message:    fmt.Sprintf("班次 %s 的结束时间必须晚于开始时间", shift.ID),
			Severity:   domain.SeverityHigh,
			EmployeeID: employeeID,
			ShiftID:    shift.ID,
		})
		return violations, timedShift{}, false
	}

	ts := timedShift{shift: shift, start: start, end: end}
	duration := ts.duration()

	if duration > p.MaxShift() {
		violations = append(violations, domain.Violation{
			Type:       domain.ViolationExcessiveHours,
			Message:    fmt.Sprintf("班次 %s 时长 %.2f 小时，超过上限 %.2f 小时", shift.ID, duration.Hours(), p.MaxShiftHours),
			Severity:   domain.SeverityHigh,
			EmployeeID: employeeID,
			ShiftID:    shift.ID,
		})
	}

	if duration < p.MinShift() {
		violations = append(violations, domain.Violation{
			Type:       domain.ViolationShortShift,
			Message:    fmt.Sprintf("班次 %s 时长 %.2f 小时，低于下限 %.2f 小时", shift.ID, duration.Hours(), p.MinShiftHours),
			Severity:   domain.SeverityMedium,
			EmployeeID: employeeID,
			ShiftID:    shift.ID,
		})
	}

	if employee != nil && !employee.HasSkill(shift.RequiredSkill) {
		violations = append(violations, domain.Violation{
			Type:       domain.ViolationSkillMismatch,
			Message:    fmt.Sprintf("员工 %s 不具备班次 %s 所需的技能 %s", employee.ID, shift.ID, shift.RequiredSkill),
			Severity:   domain.SeverityHigh,
			EmployeeID: employee.ID,
			ShiftID:    shift.ID,
		})
	}

	return violations, ts, ok
}

// checkMultipleShifts 检查同一员工在同一天是否有多个班次
func checkMultipleShifts(employee *domain.Employee, group []timedShift, p policy.Policy) []domain.Violation {
	violations := []domain.Violation{}

	counts := make(map[string]int)
	dates := []string{}
	for _, ts := range group {
		date := ts.start.In(p.Location()).Format(domain.DateLayout)
		if counts[date] == 0 {
			dates = append(dates, date)
		}
		counts[date]++
	}

	for _, date := range dates {
		if counts[date] > 1 {
			violations = append(violations, domain.Violation{
				Type:       domain.ViolationMultipleShifts,
				Message:    fmt.Sprintf("员工 %s 在 %s 有 %d 个班次", employee.ID, date, counts[date]),
				Severity:   domain.SeverityMedium,
				EmployeeID: employee.ID,
			})
		}
	}

	return violations
}

// checkRestPeriods 检查相邻两个班次之间的休息时间，group 需要已经按开始时间排序
func checkRestPeriods(employee *domain.Employee, group []timedShift, p policy.Policy) []domain.Violation {
	violations := []domain.Violation{}

	for i := 1; i < len(group); i++ {
		prev, next := group[i-1], group[i]
		gap := next.start.Sub(prev.end)
		if gap < p.MinRest() {
			violations = append(violations, domain.Violation{
				Type: domain.ViolationRestPeriod,
				Message: fmt.Sprintf("员工 %s 在班次 %s 与班次 %s 之间仅休息 %.2f 小时，少于 %.2f 小时",
					employee.ID, prev.shift.ID, next.shift.ID, gap.Hours(), p.MinRestHours),
				Severity:   domain.SeverityHigh,
				EmployeeID: employee.ID,
				ShiftID:    next.shift.ID,
			})
		}
	}

	return violations
}

type isoWeek struct {
	year int
	week int
}

// checkWeeklyCap 按 ISO 周统计工时，超过员工每周上限时产生违规
func checkWeeklyCap(employee *domain.Employee, group []timedShift, p policy.Policy) []domain.Violation {
	violations := []domain.Violation{}

	hours := make(map[isoWeek]time.Duration)
	weeks := []isoWeek{}
	for _, ts := range group {
		year, week := ts.start.In(p.Location()).ISOWeek()
		key := isoWeek{year: year, week: week}
		if _, exists := hours[key]; !exists {
			weeks = append(weeks, key)
		}
		hours[key] += ts.duration()
	}

	for _, key := range weeks {
		worked := hours[key].Hours()
		if worked > employee.WeeklyHourCap {
			violations = append(violations, domain.Violation{
				Type: domain.ViolationWeeklyCapExceeded,
				Message: fmt.Sprintf("员工 %s 在 %d 年第 %d 周工作 %.2f 小时，超过每周上限 %.2f 小时",
					employee.ID, key.year, key.week, worked, employee.WeeklyHourCap),
				Severity:   domain.SeverityHigh,
				EmployeeID: employee.ID,
			})
		}
	}

	return violations
}
