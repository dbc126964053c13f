package scheduler

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/compliance"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/cost"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
)

// Optimize 运行排班策略，检查结果后附上合规报告和成本报告
// 任何策略的输出都要经过这里才能返回给调用方
func Optimize(ctx context.Context, strategy Scheduler, req Request) (*Result, error) {
	if req.Employees == nil {
		return nil, domain.NewInputError("employees", "缺少员工列表")
	}
	if req.OpenShifts == nil {
		return nil, domain.NewInputError("shiftsToFill", "缺少待分配班次列表")
	}
	employees, err := domain.IndexEmployees(req.Employees)
	if err != nil {
		return nil, err
	}
	open := make(map[string]*domain.Shift, len(req.OpenShifts))
	for i := range req.OpenShifts {
		id := req.OpenShifts[i].ID
		if _, exists := open[id]; exists {
			return nil, domain.NewInputError(fmt.Sprintf("shiftsToFill[%d].id", i), "班次 ID %q 重复", id)
		}
		open[id] = &req.OpenShifts[i]
	}

	plan, err := strategy.Schedule(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("排班策略执行失败: %w", err)
	}
	if err := checkPlan(plan, open, employees); err != nil {
		return nil, err
	}

	// 按输入顺序生成已分配的班次
	assignedTo := make(map[string]string, len(plan.Assignments))
	for _, a := range plan.Assignments {
		assignedTo[a.ShiftID] = a.EmployeeID
	}
	shifts := make([]domain.Shift, 0, len(plan.Assignments))
	for _, shift := range req.OpenShifts {
		employeeID, ok := assignedTo[shift.ID]
		if !ok {
			continue
		}
		shift.EmployeeID = &employeeID
		shifts = append(shifts, shift)
	}

	result := &Result{
		Assignments: plan.Assignments,
		Unresolved:  plan.Unresolved,
	}

	var eg errgroup.Group
	eg.Go(func() error {
		v, err := compliance.Validate(shifts, req.Employees, req.Policy)
		result.Validation = v
		return err
	})
	eg.Go(func() error {
		c, err := cost.Calculate(shifts, req.Employees, req.Policy)
		result.Cost = c
		return err
	})
	if err := eg.Wait(); err != nil {
		if domain.IsInputError(err) {
			return nil, domain.ComputationFault("排班结果无法通过校验: %v", err)
		}
		return nil, err
	}

	return result, nil
}

// checkPlan 检查每个开放班次恰好出现一次，且引用的员工都存在
func checkPlan(plan *Plan, open map[string]*domain.Shift, employees map[string]*domain.Employee) error {
	if plan == nil {
		return domain.ComputationFault("排班策略没有返回结果")
	}

	seen := make(map[string]bool, len(open))
	mark := func(shiftID string) error {
		if open[shiftID] == nil {
			return domain.ComputationFault("排班结果包含未知班次 %q", shiftID)
		}
		if seen[shiftID] {
			return domain.ComputationFault("班次 %q 在排班结果中出现多次", shiftID)
		}
		seen[shiftID] = true
		return nil
	}

	for _, a := range plan.Assignments {
		if err := mark(a.ShiftID); err != nil {
			return err
		}
		if employees[a.EmployeeID] == nil {
			return domain.ComputationFault("班次 %q 被分配给未知员工 %q", a.ShiftID, a.EmployeeID)
		}
	}
	for _, u := range plan.Unresolved {
		if err := mark(u.ShiftID); err != nil {
			return err
		}
	}

	if len(seen) != len(open) {
		return domain.ComputationFault("排班结果遗漏了 %d 个班次", len(open)-len(seen))
	}
	return nil
}
