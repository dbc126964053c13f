package scheduler

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/cost"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/policy"
)

// 员工约束标签
const (
	ConstraintNoNight     = "no-night"
	ConstraintNoWeekend   = "no-weekend"
	ConstraintUnavailable = "unavailable" // unavailable:2024-03-04
)

// pick 为班次选择员工，返回 nil 时 reason 说明原因
// 严格筛选：技能、约束标签、休息时间、每周工时上限
// 放宽筛选：仅放宽每周工时上限（产生加班），技能和休息时间永远不放宽
func (g *Greedy) pick(target openShift, states []*employeeState, p policy.Policy) (*employeeState, domain.UnresolvedReason) {
	qualified := []*employeeState{}
	for _, st := range states {
		if st.employee.HasSkill(target.shift.RequiredSkill) && available(st.employee, target, p) {
			qualified = append(qualified, st)
		}
	}
	if len(qualified) == 0 {
		return nil, domain.UnresolvedNoQualifiedEmployee
	}

	rested := []*employeeState{}
	for _, st := range qualified {
		if hasRested(st, target, p) {
			rested = append(rested, st)
		}
	}
	if len(rested) == 0 {
		return nil, domain.UnresolvedRestPeriod
	}

	strict := []*employeeState{}
	for _, st := range rested {
		if st.hoursAssigned+target.hours() <= st.employee.WeeklyHourCap {
			strict = append(strict, st)
		}
	}
	if len(strict) > 0 {
		return g.best(strict, target, p), ""
	}

	if !p.AllowOvertime {
		return nil, domain.UnresolvedWeeklyCap
	}
	return g.best(rested, target, p), ""
}

// best 按已分配工时、新增成本、员工 ID 依次比较，选出最优候选
func (g *Greedy) best(candidates []*employeeState, target openShift, p policy.Policy) *employeeState {
	type ranked struct {
		state *employeeState
		delta int64 // 以分为单位，避免浮点误差影响排序
	}

	rs := make([]ranked, len(candidates))
	for i, st := range candidates {
		rs[i] = ranked{state: st, delta: cents(incrementalCost(st, target, p))}
	}

	slices.SortStableFunc(rs, func(a, b ranked) int {
		if a.state.hoursAssigned != b.state.hoursAssigned {
			if a.state.hoursAssigned < b.state.hoursAssigned {
				return -1
			}
			return 1
		}
		if a.delta != b.delta {
			if a.delta < b.delta {
				return -1
			}
			return 1
		}
		return strings.Compare(a.state.employee.ID, b.state.employee.ID)
	})

	return rs[0].state
}

// incrementalCost 计算把班次分配给该员工后新增的成本
func incrementalCost(st *employeeState, target openShift, p policy.Policy) float64 {
	next := cost.PriceEmployee(st.employee, append(slices.Clip(st.intervals), target.interval()), p)
	return next.TotalCost - st.currentCost
}

// assign 更新员工状态
func assign(st *employeeState, target openShift, p policy.Policy) {
	st.intervals = append(st.intervals, target.interval())
	st.hoursAssigned += target.hours()
	if st.lastShiftEnd == nil || target.end.After(*st.lastShiftEnd) {
		end := target.end
		st.lastShiftEnd = &end
	}
	st.currentCost = cost.PriceEmployee(st.employee, st.intervals, p).TotalCost
}

// hasRested 判断员工距离上一个班次结束是否已经休息足够时间
func hasRested(st *employeeState, target openShift, p policy.Policy) bool {
	if st.lastShiftEnd == nil {
		return true
	}
	return !target.start.Before(st.lastShiftEnd.Add(p.MinRest()))
}

// available 检查员工的约束标签是否允许其上这个班次
func available(e *domain.Employee, target openShift, p policy.Policy) bool {
	start := target.start.In(p.Location())

	if e.HasConstraint(ConstraintNoNight) && p.NightOverlap(target.start, target.end) > 0 {
		return false
	}
	if e.HasConstraint(ConstraintNoWeekend) && (start.Weekday() == time.Saturday || start.Weekday() == time.Sunday) {
		return false
	}
	if slices.Contains(e.ConstraintValues(ConstraintUnavailable), start.Format(domain.DateLayout)) {
		return false
	}
	return true
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
