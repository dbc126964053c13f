package policy

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // 保证任何部署环境下都能加载策略时区

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// 劳动法相关的默认策略常量
const (
	DefaultOvertimeMultiplier   = 1.5
	DefaultNightPremiumRate     = 0.2
	DefaultNightStartHour       = 22
	DefaultNightEndHour         = 5
	DefaultNightPremiumCapHours = 2.0 // 每个班次最多计入 2 小时夜班补贴，沿用原有口径
	DefaultMinRestHours         = 11.0
	DefaultMaxShiftHours        = 12.0
	DefaultMinShiftHours        = 2.0
	DefaultSalaryDaysPerMonth   = 30.0 // 月薪折算时薪：月薪 / 30 / 8
	DefaultSalaryHoursPerDay    = 8.0
	DefaultTimeZone             = "UTC"
)

// Policy 是排班、合规校验和成本计算所使用的规则集合，可以按辖区通过 YAML 文件覆盖
type Policy struct {
	OvertimeMultiplier   float64 `yaml:"overtimeMultiplier" validate:"gte=1,lte=10"`
	NightPremiumRate     float64 `yaml:"nightPremiumRate" validate:"gte=0,lte=10"`
	NightStartHour       int     `yaml:"nightStartHour" validate:"min=0,max=23"`
	NightEndHour         int     `yaml:"nightEndHour" validate:"min=0,max=23"`
	NightPremiumCapHours float64 `yaml:"nightPremiumCapHours" validate:"gte=0,lte=24"`
	MinRestHours         float64 `yaml:"minRestHours" validate:"gte=0,lte=168"` // 工时类字段最多一周 168 小时，换算成 time.Duration 不会溢出
	MaxShiftHours        float64 `yaml:"maxShiftHours" validate:"gt=0,lte=168"`
	MinShiftHours        float64 `yaml:"minShiftHours" validate:"gte=0,ltefield=MaxShiftHours"`
	SalaryDaysPerMonth   float64 `yaml:"salaryDaysPerMonth" validate:"gt=0,lte=31"`
	SalaryHoursPerDay    float64 `yaml:"salaryHoursPerDay" validate:"gt=0,lte=24"`
	AllowOvertime        bool    `yaml:"allowOvertime"`
	TimeZone             string  `yaml:"timeZone" validate:"required"`

	loc *time.Location
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Default() Policy {
	return Policy{
		OvertimeMultiplier:   DefaultOvertimeMultiplier,
		NightPremiumRate:     DefaultNightPremiumRate,
		NightStartHour:       DefaultNightStartHour,
		NightEndHour:         DefaultNightEndHour,
		NightPremiumCapHours: DefaultNightPremiumCapHours,
		MinRestHours:         DefaultMinRestHours,
		MaxShiftHours:        DefaultMaxShiftHours,
		MinShiftHours:        DefaultMinShiftHours,
		SalaryDaysPerMonth:   DefaultSalaryDaysPerMonth,
		SalaryHoursPerDay:    DefaultSalaryHoursPerDay,
		AllowOvertime:        true,
		TimeZone:             DefaultTimeZone,
		loc:                  time.UTC,
	}
}

// LoadFromPath 读取 YAML 策略文件，文件中未出现的字段保留默认值
func LoadFromPath(path string) (Policy, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("无法读取策略文件: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("无法解析策略文件: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}

	return p, nil
}

// Validate 校验策略字段并加载时区
func (p *Policy) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("策略校验失败: %w", err)
	}

	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return fmt.Errorf("无效的时区 %q: %w", p.TimeZone, err)
	}
	p.loc = loc

	return nil
}

func (p Policy) Location() *time.Location {
	if p.loc == nil {
		return time.UTC
	}
	return p.loc
}

func (p Policy) MinRest() time.Duration {
	return hoursToDuration(p.MinRestHours)
}

func (p Policy) MaxShift() time.Duration {
	return hoursToDuration(p.MaxShiftHours)
}

func (p Policy) MinShift() time.Duration {
	return hoursToDuration(p.MinShiftHours)
}

// HourlyRate 计算员工时薪：优先使用时薪，否则按月薪折算
func (p Policy) HourlyRate(hourlyRate, monthlySalary float64) float64 {
	if hourlyRate > 0 {
		return hourlyRate
	}
	return monthlySalary / p.SalaryDaysPerMonth / p.SalaryHoursPerDay
}

// Fingerprint 用于区分不同策略下的缓存结果
func (p Policy) Fingerprint() uint64 {
	data, err := yaml.Marshal(p)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
