package domain

import (
	"fmt"
	"slices"
	"strings"
)

type Employee struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	WeeklyHourCap float64  `json:"weeklyHourCap"`
	MonthlySalary float64  `json:"monthlySalary,omitempty"`
	HourlyRate    float64  `json:"hourlyRate,omitempty"`
	Skills        []string `json:"skills"`
	Constraints   []string `json:"constraints"`
}

// HasSkill 判断员工是否具备某项技能，skill 为空时视为不限技能
func (e *Employee) HasSkill(skill string) bool {
	if skill == "" {
		return true
	}
	return slices.Contains(e.Skills, skill)
}

func (e *Employee) HasConstraint(tag string) bool {
	return slices.Contains(e.Constraints, tag)
}

// ConstraintValues 返回形如 "prefix:value" 的约束标签中的 value 部分
func (e *Employee) ConstraintValues(prefix string) []string {
	values := []string{}
	for _, c := range e.Constraints {
		if v, ok := strings.CutPrefix(c, prefix+":"); ok {
			values = append(values, v)
		}
	}
	return values
}

// IndexEmployees 按 ID 建立员工索引，ID 重复时返回 InputError
func IndexEmployees(employees []Employee) (map[string]*Employee, error) {
	index := make(map[string]*Employee, len(employees))
	for i := range employees {
		id := employees[i].ID
		if _, exists := index[id]; exists {
			return nil, NewInputError(fmt.Sprintf("employees[%d].id", i), "员工 ID %q 重复", id)
		}
		index[id] = &employees[i]
	}
	return index, nil
}
