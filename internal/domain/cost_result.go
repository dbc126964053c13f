package domain

type CostBreakdown struct {
	Base     float64 `json:"base"`
	Overtime float64 `json:"overtime"`
	Night    float64 `json:"night"`
	Holiday  float64 `json:"holiday"`
}

// Sum 返回各项费用之和
func (b CostBreakdown) Sum() float64 {
	return b.Base + b.Overtime + b.Night + b.Holiday
}

type EmployeeCost struct {
	EmployeeID    string  `json:"employeeId"`
	Name          string  `json:"name"`
	HourlyRate    float64 `json:"hourlyRate"`
	Shifts        int     `json:"shifts"`
	HoursWorked   float64 `json:"hoursWorked"`
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	NightHours    float64 `json:"nightHours"`
	BaseCost      float64 `json:"baseCost"`
	OvertimeCost  float64 `json:"overtimeCost"`
	NightCost     float64 `json:"nightCost"`
	HolidayCost   float64 `json:"holidayCost"`
	TotalCost     float64 `json:"totalCost"`
}

type CostSummary struct {
	TotalHours        float64  `json:"totalHours"`
	RegularHours      float64  `json:"regularHours"`
	OvertimeHours     float64  `json:"overtimeHours"`
	NightHours        float64  `json:"nightHours"`
	EmployeeCount     int      `json:"employeeCount"`
	PricedShifts      int      `json:"pricedShifts"`
	SkippedShiftIDs   []string `json:"skippedShiftIds"`
	AverageHourlyRate float64  `json:"averageHourlyRate"`
}

type CostResult struct {
	TotalCost     float64        `json:"totalCost"`
	Breakdown     CostBreakdown  `json:"breakdown"`
	EmployeeCosts []EmployeeCost `json:"employeeCosts"`
	Summary       CostSummary    `json:"summary"`
}
