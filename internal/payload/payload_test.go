package payload

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
)

func parse(t *testing.T, body string, v any) error {
	t.Helper()
	validate, trans, err := NewValidator()
	require.NoError(t, err)
	if err := Decode(strings.NewReader(body), v); err != nil {
		return err
	}
	return Check(validate, trans, v)
}

func TestScheduleRequest(t *testing.T) {
	body := `{
		"shifts": [{"id": "s1", "employeeId": "e1", "start": "2024-03-04T08:00:00Z", "end": "2024-03-04T17:00:00Z", "date": "2024-03-04"}],
		"employees": [{"id": "e1", "name": "张伟", "weeklyHourCap": 40, "monthlySalary": 7200}]
	}`

	var req ScheduleRequest
	require.NoError(t, parse(t, body, &req))

	shifts, employees := req.Domain()
	require.Len(t, shifts, 1)
	assert.Equal(t, "e1", shifts[0].AssignedTo())
	assert.Equal(t, []domain.Employee{{
		ID: "e1", Name: "张伟", WeeklyHourCap: 40, MonthlySalary: 7200,
		Skills: []string{}, Constraints: []string{},
	}}, employees)
}

func TestScheduleRequest_EmptyListsAccepted(t *testing.T) {
	var req ScheduleRequest
	require.NoError(t, parse(t, `{"shifts": [], "employees": []}`, &req))
}

func TestScheduleRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"缺少 shifts", `{"employees": []}`, "shifts"},
		{"缺少 employees", `{"shifts": []}`, "employees"},
		{"缺少工资", `{"shifts": [], "employees": [{"id": "e1", "weeklyHourCap": 40}]}`, "employees[0].monthlySalary"},
		{"工时上限非正", `{"shifts": [], "employees": [{"id": "e1", "weeklyHourCap": 0, "hourlyRate": 10}]}`, "employees[0].weeklyHourCap"},
		{"时薪为负", `{"shifts": [], "employees": [{"id": "e1", "weeklyHourCap": 40, "hourlyRate": -1}]}`, "employees[0].hourlyRate"},
		{"时薪为零", `{"shifts": [], "employees": [{"id": "e1", "weeklyHourCap": 40, "hourlyRate": 0}]}`, "employees[0].hourlyRate"},
		{"月薪为零", `{"shifts": [], "employees": [{"id": "e1", "weeklyHourCap": 40, "monthlySalary": 0}]}`, "employees[0].monthlySalary"},
		{"缺少班次 ID", `{"shifts": [{"start": "a", "end": "b"}], "employees": []}`, "shifts[0].id"},
		{"未知字段", `{"shifts": [], "employees": [], "extra": 1}`, "body"},
		{"类型错误", `{"shifts": {}, "employees": []}`, "body"},
		{"空请求体", ``, "body"},
		{"多余内容", `{"shifts": [], "employees": []} {}`, "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ScheduleRequest
			err := parse(t, tt.body, &req)
			var inputErr *domain.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.NotEmpty(t, inputErr.Reason)
		})
	}
}

func TestSuggestRequest(t *testing.T) {
	body := `{
		"employees": [{"id": "e1", "weeklyHourCap": 40, "hourlyRate": 10, "skills": ["cook"]}],
		"shiftsToFill": [{"id": "s1", "start": "2024-03-04T08:00:00Z", "end": "2024-03-04T16:00:00Z", "requiredSkill": "cook"}],
		"rules": ["restPeriodHours=12", "不要排连班"]
	}`

	var req SuggestRequest
	require.NoError(t, parse(t, body, &req))

	employees, shifts := req.Domain()
	assert.Equal(t, []string{"cook"}, employees[0].Skills)
	assert.Equal(t, "cook", shifts[0].RequiredSkill)
	assert.False(t, shifts[0].IsAssigned())
	assert.Len(t, req.Rules, 2)
}

func TestSuggestRequest_EmptyLists(t *testing.T) {
	for _, body := range []string{
		`{"employees": [], "shiftsToFill": [{"id": "s1", "start": "a", "end": "b"}]}`,
		`{"employees": [{"id": "e1", "weeklyHourCap": 40, "hourlyRate": 10}], "shiftsToFill": []}`,
	} {
		var req SuggestRequest
		var inputErr *domain.InputError
		assert.ErrorAs(t, parse(t, body, &req), &inputErr)
	}
}

func TestSuggestRequest_AssignedOpenShift(t *testing.T) {
	body := `{
		"employees": [{"id": "e1", "weeklyHourCap": 40, "hourlyRate": 10}],
		"shiftsToFill": [{"id": "s1", "employeeId": "e1", "start": "a", "end": "b"}]
	}`
	var req SuggestRequest
	var inputErr *domain.InputError
	assert.ErrorAs(t, parse(t, body, &req), &inputErr)
}

func TestDecode_BodyLimit(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"shifts": [], "employees": []}`))
	body := http.MaxBytesReader(httptest.NewRecorder(), r.Body, 8)

	var req ScheduleRequest
	err := Decode(body, &req)
	var inputErr *domain.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, inputErr.Reason, "8")
}
