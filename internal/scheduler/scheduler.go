package scheduler

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
)

// Greedy 按开始时间依次为班次挑选员工，优先选择已分配工时最少的员工
type Greedy struct {
	parameters *Parameters
}

func New(parameters *Parameters) *Greedy {
	if parameters == nil {
		parameters = &Parameters{}
	}
	return &Greedy{parameters: parameters}
}

func (g *Greedy) Schedule(ctx context.Context, req Request) (*Plan, error) {
	plan := &Plan{
		Assignments: []domain.Assignment{},
		Unresolved:  []domain.UnresolvedShift{},
	}

	// 时间无效或时长超限的班次直接放入 unresolved
	shifts := make([]openShift, 0, len(req.OpenShifts))
	for i := range req.OpenShifts {
		shift := &req.OpenShifts[i]
		start, end, err := shift.Window(req.Policy.Location())
		if err != nil || !end.After(start) {
			plan.Unresolved = append(plan.Unresolved, domain.UnresolvedShift{ShiftID: shift.ID, Reason: domain.UnresolvedInvalidTime})
			continue
		}
		// 超过单班时长上限的班次无论分给谁都是严重违规
		if end.Sub(start) > req.Policy.MaxShift() {
			plan.Unresolved = append(plan.Unresolved, domain.UnresolvedShift{ShiftID: shift.ID, Reason: domain.UnresolvedExcessiveHours})
			continue
		}
		shifts = append(shifts, openShift{shift: shift, start: start, end: end})
	}

	slices.SortStableFunc(shifts, func(a, b openShift) int {
		if c := a.start.Compare(b.start); c != 0 {
			return c
		}
		return strings.Compare(a.shift.ID, b.shift.ID)
	})

	states := make([]*employeeState, len(req.Employees))
	for i := range req.Employees {
		states[i] = &employeeState{employee: &req.Employees[i]}
	}

	evaluations := 0
	for i, target := range shifts {
		if ctx.Err() != nil {
			slog.Warn("排班超时，剩余班次未分配", slog.Int("remaining", len(shifts)-i))
			plan.Unresolved = append(plan.Unresolved, remaining(shifts[i:], domain.UnresolvedDeadlineExceeded)...)
			break
		}

		evaluations += len(states)
		if g.parameters.MaxCandidateEvaluations > 0 && evaluations > g.parameters.MaxCandidateEvaluations {
			slog.Warn("候选评估次数超过上限，剩余班次未分配", slog.Int("remaining", len(shifts)-i))
			plan.Unresolved = append(plan.Unresolved, remaining(shifts[i:], domain.UnresolvedBudgetExhausted)...)
			break
		}

		chosen, reason := g.pick(target, states, req.Policy)
		if chosen == nil {
			plan.Unresolved = append(plan.Unresolved, domain.UnresolvedShift{ShiftID: target.shift.ID, Reason: reason})
			continue
		}

		assign(chosen, target, req.Policy)
		plan.Assignments = append(plan.Assignments, domain.Assignment{ShiftID: target.shift.ID, EmployeeID: chosen.employee.ID})
	}

	return plan, nil
}

func remaining(shifts []openShift, reason domain.UnresolvedReason) []domain.UnresolvedShift {
	unresolved := make([]domain.UnresolvedShift, len(shifts))
	for i, target := range shifts {
		unresolved[i] = domain.UnresolvedShift{ShiftID: target.shift.ID, Reason: reason}
	}
	return unresolved
}

// Preset 直接采用外部给出的分配方案，未覆盖的班次视为无法分配
type Preset struct {
	Assignments []domain.Assignment
}

func (p *Preset) Schedule(ctx context.Context, req Request) (*Plan, error) {
	plan := &Plan{
		Assignments: slices.Clone(p.Assignments),
		Unresolved:  []domain.UnresolvedShift{},
	}
	if plan.Assignments == nil {
		plan.Assignments = []domain.Assignment{}
	}

	covered := make(map[string]bool, len(p.Assignments))
	for _, a := range p.Assignments {
		covered[a.ShiftID] = true
	}
	for _, shift := range req.OpenShifts {
		if !covered[shift.ID] {
			plan.Unresolved = append(plan.Unresolved, domain.UnresolvedShift{ShiftID: shift.ID, Reason: domain.UnresolvedNoQualifiedEmployee})
		}
	}

	return plan, nil
}
