package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/payload"
	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/utils"
)

// Slot 是一天中固定的班次时段
type Slot struct {
	Start          string // 15:04
	End            string // 15:04，早于 Start 表示跨零点
	RequiredSkill  string
	ApplicableDays []time.Weekday
}

var (
	weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	allDays  = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
)

var Slots = []Slot{
	{Start: "09:00", End: "12:00", RequiredSkill: "", ApplicableDays: allDays},
	{Start: "13:30", End: "18:00", RequiredSkill: "cashier", ApplicableDays: weekdays},
	{Start: "10:00", End: "16:00", RequiredSkill: "cook", ApplicableDays: allDays},
	{Start: "19:00", End: "23:00", RequiredSkill: "", ApplicableDays: allDays},
	{Start: "22:00", End: "04:00", RequiredSkill: "supervisor", ApplicableDays: []time.Weekday{time.Friday, time.Saturday}},
}

var Skills = []string{"cashier", "cook", "supervisor", "cleaner"}

type Generator struct {
	r *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed))}
}

// Employees 随机生成 n 个员工，员工 ID 由姓名拼音生成且不重复
func (g *Generator) Employees(n int) []payload.Employee {
	employees := make([]payload.Employee, 0, n)
	seen := map[string]bool{}

	for len(employees) < n {
		name := utils.GenerateRandomChineseName(g.r)
		id := utils.GenerateEmployeeIDFromChineseName(g.r, name)
		if seen[id] {
			continue
		}
		seen[id] = true

		e := payload.Employee{
			ID:            id,
			Name:          name,
			WeeklyHourCap: float64(8 * (g.r.Intn(5) + 1)),
			Skills:        utils.GenerateRandomSubset(g.r, Skills),
			Constraints:   g.constraints(),
		}
		// 一部分员工按月薪计算
		if g.r.Intn(3) == 0 {
			salary := float64(3000 + 500*g.r.Intn(10))
			e.MonthlySalary = &salary
		} else {
			rate := float64(20 + g.r.Intn(30))
			e.HourlyRate = &rate
		}
		employees = append(employees, e)
	}

	return employees
}

func (g *Generator) constraints() []string {
	constraints := []string{}
	if g.r.Intn(4) == 0 {
		constraints = append(constraints, "no-night")
	}
	if g.r.Intn(5) == 0 {
		constraints = append(constraints, "no-weekend")
	}
	return constraints
}

// OpenShifts 从 weekStart 所在的周一开始，按时段依次生成最多 n 个待分配班次
func (g *Generator) OpenShifts(weekStart time.Time, n int) ([]payload.OpenShift, error) {
	monday := weekStart
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}

	shifts := []payload.OpenShift{}
	for day := 0; day < 7 && len(shifts) < n; day++ {
		date := monday.AddDate(0, 0, day)
		for i, slot := range Slots {
			if len(shifts) >= n {
				break
			}
			if !slices.Contains(slot.ApplicableDays, date.Weekday()) {
				continue
			}

			start, end, err := slot.window(date)
			if err != nil {
				return nil, err
			}
			shifts = append(shifts, payload.OpenShift{
				ID:            fmt.Sprintf("%s-%d-%s", date.Format("0102"), i, utils.GenerateRandomID(g.r, 3, 2)),
				Start:         start.Format(time.RFC3339),
				End:           end.Format(time.RFC3339),
				RequiredSkill: slot.RequiredSkill,
			})
		}
	}

	return shifts, nil
}

func (s Slot) window(date time.Time) (time.Time, time.Time, error) {
	day := date.Format(domain.DateLayout)
	start, err := time.ParseInLocation(domain.DateLayout+" 15:04", day+" "+s.Start, date.Location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("时段开始时间 %q 格式错误: %w", s.Start, err)
	}
	end, err := time.ParseInLocation(domain.DateLayout+" 15:04", day+" "+s.End, date.Location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("时段结束时间 %q 格式错误: %w", s.End, err)
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

func (g *Generator) SuggestRequest(weekStart time.Time, employees, shifts int) (*payload.SuggestRequest, error) {
	open, err := g.OpenShifts(weekStart, shifts)
	if err != nil {
		return nil, err
	}
	return &payload.SuggestRequest{
		Employees:    g.Employees(employees),
		ShiftsToFill: open,
		Rules:        []string{},
	}, nil
}

// ScheduleRequest 生成随机分配的排班，大约十分之一的班次不分配
func (g *Generator) ScheduleRequest(weekStart time.Time, employees, shifts int) (*payload.ScheduleRequest, error) {
	open, err := g.OpenShifts(weekStart, shifts)
	if err != nil {
		return nil, err
	}
	es := g.Employees(employees)

	req := &payload.ScheduleRequest{
		Shifts:    make([]payload.Shift, 0, len(open)),
		Employees: es,
	}
	for _, s := range open {
		shift := payload.Shift{ID: s.ID, Start: s.Start, End: s.End, RequiredSkill: s.RequiredSkill}
		if len(es) > 0 && g.r.Intn(10) != 0 {
			id := es[g.r.Intn(len(es))].ID
			shift.EmployeeID = &id
		}
		req.Shifts = append(req.Shifts, shift)
	}

	return req, nil
}

var csvHeaders = []string{"id", "name", "weeklyHourCap", "hourlyRate", "monthlySalary", "skills", "constraints"}

// LoadEmployeesCSV 读取员工表，skills 和 constraints 列用分号分隔
func LoadEmployeesCSV(reader io.Reader) ([]payload.Employee, error) {
	r := csv.NewReader(reader)

	// 读取表头
	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}
	columns := map[string]int{}
	for i, header := range headers {
		columns[strings.TrimSpace(header)] = i
	}
	for _, header := range csvHeaders {
		if _, ok := columns[header]; !ok {
			return nil, fmt.Errorf("缺少列 %s", header)
		}
	}

	employees := []payload.Employee{}
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("第 %d 行读取失败: %w", line, err)
		}

		e := payload.Employee{
			ID:          strings.TrimSpace(record[columns["id"]]),
			Name:        strings.TrimSpace(record[columns["name"]]),
			Skills:      splitList(record[columns["skills"]]),
			Constraints: splitList(record[columns["constraints"]]),
		}
		if e.WeeklyHourCap, err = strconv.ParseFloat(strings.TrimSpace(record[columns["weeklyHourCap"]]), 64); err != nil {
			return nil, fmt.Errorf("第 %d 行的 weeklyHourCap 无效: %w", line, err)
		}
		if e.HourlyRate, err = parseOptional(record[columns["hourlyRate"]]); err != nil {
			return nil, fmt.Errorf("第 %d 行的 hourlyRate 无效: %w", line, err)
		}
		if e.MonthlySalary, err = parseOptional(record[columns["monthlySalary"]]); err != nil {
			return nil, fmt.Errorf("第 %d 行的 monthlySalary 无效: %w", line, err)
		}

		employees = append(employees, e)
	}

	return employees, nil
}

func parseOptional(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
