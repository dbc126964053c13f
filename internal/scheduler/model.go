package scheduler

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/cost"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/policy"
)

// 排班策略参数
type Parameters struct {
	MaxCandidateEvaluations int // 候选评估次数上限，0 表示不限制
}

type Request struct {
	Employees  []domain.Employee
	OpenShifts []domain.Shift
	Policy     policy.Policy
}

// Plan 是排班策略给出的分配方案，尚未经过校验
type Plan struct {
	Assignments []domain.Assignment
	Unresolved  []domain.UnresolvedShift
}

// Result 是经过校验后的排班结果，附带合规报告和成本报告
type Result struct {
	Assignments []domain.Assignment      `json:"suggestion"`
	Unresolved  []domain.UnresolvedShift `json:"unresolved"`
	Validation  *domain.ValidationResult `json:"validation"`
	Cost        *domain.CostResult       `json:"cost"`
}

// Scheduler 是排班策略，任何策略的输出都需要经过 Optimize 校验后才可信
type Scheduler interface {
	Schedule(ctx context.Context, req Request) (*Plan, error)
}

// openShift 是时间已经解析成功的开放班次
type openShift struct {
	shift *domain.Shift
	start time.Time
	end   time.Time
}

func (s openShift) interval() cost.Interval {
	return cost.Interval{Start: s.start, End: s.end}
}

func (s openShift) hours() float64 {
	return s.end.Sub(s.start).Hours()
}

// employeeState 记录排班过程中每个员工的状态
type employeeState struct {
	employee      *domain.Employee
	hoursAssigned float64
	lastShiftEnd  *time.Time // 为 nil 表示还没有分配任何班次
	intervals     []cost.Interval
	currentCost   float64
}
