package payload

import "github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"

type Employee struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name"`
	WeeklyHourCap float64  `json:"weeklyHourCap" validate:"gt=0"`
	MonthlySalary *float64 `json:"monthlySalary" validate:"required_without=HourlyRate,omitempty,gt=0"`
	HourlyRate    *float64 `json:"hourlyRate" validate:"required_without=MonthlySalary,omitempty,gt=0"`
	Skills        []string `json:"skills" validate:"dive,required"`
	Constraints   []string `json:"constraints" validate:"dive,required"`
}

type Shift struct {
	ID            string  `json:"id" validate:"required"`
	EmployeeID    *string `json:"employeeId"`
	Start         string  `json:"start" validate:"required"`
	End           string  `json:"end" validate:"required"`
	RequiredSkill string  `json:"requiredSkill"`
	Date          string  `json:"date"` // 由 start 推导，传入的值会被忽略
}

// OpenShift 是待分配的班次，不允许带 employeeId
type OpenShift struct {
	ID            string `json:"id" validate:"required"`
	Start         string `json:"start" validate:"required"`
	End           string `json:"end" validate:"required"`
	RequiredSkill string `json:"requiredSkill"`
	Date          string `json:"date"`
}

// ScheduleRequest 是 /validate-schedule 和 /calculate-schedule-cost 的请求体
type ScheduleRequest struct {
	Shifts    []Shift    `json:"shifts" validate:"required,dive"`
	Employees []Employee `json:"employees" validate:"required,dive"`
}

// SuggestRequest 是 /suggest-schedule 的请求体
type SuggestRequest struct {
	Employees    []Employee  `json:"employees" validate:"required,min=1,dive"`
	ShiftsToFill []OpenShift `json:"shiftsToFill" validate:"required,min=1,dive"`
	Rules        []string    `json:"rules"`
}

// ProposalRequest 是外部给出的分配方案
type ProposalRequest struct {
	Suggestion []Assignment `json:"suggestion" validate:"required,dive"`
}

type Assignment struct {
	ShiftID    string `json:"shiftId" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
}

func (e *Employee) Domain() domain.Employee {
	employee := domain.Employee{
		ID:            e.ID,
		Name:          e.Name,
		WeeklyHourCap: e.WeeklyHourCap,
		Skills:        e.Skills,
		Constraints:   e.Constraints,
	}
	if e.MonthlySalary != nil {
		employee.MonthlySalary = *e.MonthlySalary
	}
	if e.HourlyRate != nil {
		employee.HourlyRate = *e.HourlyRate
	}
	if employee.Skills == nil {
		employee.Skills = []string{}
	}
	if employee.Constraints == nil {
		employee.Constraints = []string{}
	}
	return employee
}

func Employees(es []Employee) []domain.Employee {
	employees := make([]domain.Employee, 0, len(es))
	for i := range es {
		employees = append(employees, es[i].Domain())
	}
	return employees
}

func (r *ScheduleRequest) Domain() ([]domain.Shift, []domain.Employee) {
	shifts := make([]domain.Shift, 0, len(r.Shifts))
	for _, s := range r.Shifts {
		shifts = append(shifts, domain.Shift{
			ID:            s.ID,
			EmployeeID:    s.EmployeeID,
			Start:         s.Start,
			End:           s.End,
			RequiredSkill: s.RequiredSkill,
		})
	}
	return shifts, Employees(r.Employees)
}

func (r *SuggestRequest) Domain() ([]domain.Employee, []domain.Shift) {
	shifts := make([]domain.Shift, 0, len(r.ShiftsToFill))
	for _, s := range r.ShiftsToFill {
		shifts = append(shifts, domain.Shift{
			ID:            s.ID,
			Start:         s.Start,
			End:           s.End,
			RequiredSkill: s.RequiredSkill,
		})
	}
	return Employees(r.Employees), shifts
}

func (r *ProposalRequest) Domain() []domain.Assignment {
	assignments := make([]domain.Assignment, 0, len(r.Suggestion))
	for _, a := range r.Suggestion {
		assignments = append(assignments, domain.Assignment{ShiftID: a.ShiftID, EmployeeID: a.EmployeeID})
	}
	return assignments
}
