package cost

import (
	"math"
	"time"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/policy"
)

// Interval 是已经解析好的班次起止时间
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Calculate 计算排班的人力成本
// 未分配、员工不存在或者时间无效的班次不计价，记录在 summary.skippedShiftIds 中
func Calculate(shifts []domain.Shift, employees []domain.Employee, p policy.Policy) (*domain.CostResult, error) {
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

	intervals := make(map[string][]Interval)
	skipped := []string{}
	priced := 0

	for i := range shifts {
		shift := &shifts[i]
		if !shift.IsAssigned() || index[shift.AssignedTo()] == nil {
			skipped = append(skipped, shift.ID)
			continue
		}
		start, end, err := shift.Window(p.Location())
		if err != nil || !end.After(start) {
			skipped = append(skipped, shift.ID)
			continue
		}
		intervals[shift.AssignedTo()] = append(intervals[shift.AssignedTo()], Interval{Start: start, End: end})
		priced++
	}

	result := &domain.CostResult{
		EmployeeCosts: []domain.EmployeeCost{},
	}

	// 按输入顺序输出员工成本，保证结果稳定
	for i := range employees {
		e := &employees[i]
		if len(intervals[e.ID]) == 0 {
			continue
		}
		line := PriceEmployee(e, intervals[e.ID], p)
		result.EmployeeCosts = append(result.EmployeeCosts, line)

		result.Breakdown.Base += line.BaseCost
		result.Breakdown.Overtime += line.OvertimeCost
		result.Breakdown.Night += line.NightCost
		result.Breakdown.Holiday += line.HolidayCost

		result.Summary.TotalHours += line.HoursWorked
		result.Summary.RegularHours += line.RegularHours
		result.Summary.OvertimeHours += line.OvertimeHours
		result.Summary.NightHours += line.NightHours
	}

	result.Breakdown = domain.CostBreakdown{
		Base:     round2(result.Breakdown.Base),
		Overtime: round2(result.Breakdown.Overtime),
		Night:    round2(result.Breakdown.Night),
		Holiday:  round2(result.Breakdown.Holiday),
	}
	result.TotalCost = round2(result.Breakdown.Sum())

	result.Summary.TotalHours = round2(result.Summary.TotalHours)
	result.Summary.RegularHours = round2(result.Summary.RegularHours)
	result.Summary.OvertimeHours = round2(result.Summary.OvertimeHours)
	result.Summary.NightHours = round2(result.Summary.NightHours)
	result.Summary.EmployeeCount = len(result.EmployeeCosts)
	result.Summary.PricedShifts = priced
	result.Summary.SkippedShiftIDs = skipped
	if result.Summary.TotalHours > 0 {
		result.Summary.AverageHourlyRate = round2(result.TotalCost / result.Summary.TotalHours)
	}

	if !finite(result.TotalCost, result.Summary.TotalHours, result.Summary.AverageHourlyRate) {
		return nil, domain.ComputationFault("成本计算结果溢出")
	}

	return result, nil
}

// PriceEmployee 计算单个员工在给定班次下的成本
func PriceEmployee(e *domain.Employee, intervals []Interval, p policy.Policy) domain.EmployeeCost {
	rate := p.HourlyRate(e.HourlyRate, e.MonthlySalary)

	var total, night float64
	for _, iv := range intervals {
		hours := iv.Duration().Hours()
		total += hours
		night += nightPremiumHours(iv, p)
	}

	regular := math.Min(total, e.WeeklyHourCap)
	overtime := math.Max(0, total-e.WeeklyHourCap)

	line := domain.EmployeeCost{
		EmployeeID:    e.ID,
		Name:          e.Name,
		HourlyRate:    round2(rate),
		Shifts:        len(intervals),
		HoursWorked:   round2(total),
		RegularHours:  round2(regular),
		OvertimeHours: round2(overtime),
		NightHours:    round2(night),
		BaseCost:      round2(regular * rate),
		OvertimeCost:  round2(overtime * rate * p.OvertimeMultiplier),
		NightCost:     round2(night * rate * p.NightPremiumRate),
		HolidayCost:   0, // 节假日日历不在本服务范围内
	}
	line.TotalCost = round2(line.BaseCost + line.OvertimeCost + line.NightCost + line.HolidayCost)

	return line
}

// nightPremiumHours 计算单个班次可以计入夜班补贴的小时数，每个班次最多计入 NightPremiumCapHours
func nightPremiumHours(iv Interval, p policy.Policy) float64 {
	overlap := p.NightOverlap(iv.Start, iv.End).Hours()
	if overlap <= 0 {
		return 0
	}
	return math.Min(math.Min(overlap, iv.Duration().Hours()), p.NightPremiumCapHours)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
