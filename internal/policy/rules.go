package policy

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
)

// ApplyRules 将请求中的规则指令应用到策略上
// 形如 "key=value" 且 key 可识别的规则会覆盖策略，其余规则原样返回
func (p Policy) ApplyRules(rules []string) (Policy, []string, error) {
	next := p
	ignored := []string{}

	for i, rule := range rules {
		key, value, ok := strings.Cut(rule, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || !isKnownRule(key) {
			ignored = append(ignored, rule)
			continue
		}

		field := fmt.Sprintf("rules[%d]", i)
		if err := next.applyRule(key, value); err != nil {
			return Policy{}, nil, domain.NewInputError(field, "规则 %s 的值 %q 无效: %v", key, value, err)
		}
	}

	if err := next.Validate(); err != nil {
		return Policy{}, nil, domain.NewInputError("rules", "%v", err)
	}

	return next, ignored, nil
}

var knownRules = []string{
	"restPeriodHours",
	"maxShiftHours",
	"minShiftHours",
	"overtimeMultiplier",
	"nightPremiumRate",
	"nightPremiumCapHours",
	"allowOvertime",
}

func isKnownRule(key string) bool {
	return slices.Contains(knownRules, key)
}

func (p *Policy) applyRule(key, value string) error {
	if key == "allowOvertime" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		p.AllowOvertime = b
		return nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return errors.New("必须是有限数值")
	}
	switch key {
	case "restPeriodHours":
		p.MinRestHours = f
	case "maxShiftHours":
		p.MaxShiftHours = f
	case "minShiftHours":
		p.MinShiftHours = f
	case "overtimeMultiplier":
		p.OvertimeMultiplier = f
	case "nightPremiumRate":
		p.NightPremiumRate = f
	case "nightPremiumCapHours":
		p.NightPremiumCapHours = f
	}
	return nil
}
