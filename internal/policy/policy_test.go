package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/shift-kernel/backend/internal/domain"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, 1.5, p.OvertimeMultiplier)
	assert.Equal(t, 0.2, p.NightPremiumRate)
	assert.Equal(t, 11*time.Hour, p.MinRest())
	assert.Equal(t, 12*time.Hour, p.MaxShift())
	assert.Equal(t, 2*time.Hour, p.MinShift())
	assert.Equal(t, time.UTC, p.Location())
	assert.NoError(t, p.Validate())
}

func TestHourlyRate(t *testing.T) {
	p := Default()

	assert.Equal(t, 12.0, p.HourlyRate(12, 6000))
	assert.Equal(t, 25.0, p.HourlyRate(0, 6000)) // 6000 / 30 / 8
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	content := "minRestHours: 12\novertimeMultiplier: 2\ntimeZone: Asia/Shanghai\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 12*time.Hour, p.MinRest())
	assert.Equal(t, 2.0, p.OvertimeMultiplier)
	assert.Equal(t, DefaultNightPremiumRate, p.NightPremiumRate, "未覆盖的字段应保留默认值")
	assert.Equal(t, "Asia/Shanghai", p.Location().String())
}

func TestLoadFromPath_Invalid(t *testing.T) {
	dir := t.TempDir()

	badZone := filepath.Join(dir, "zone.yaml")
	require.NoError(t, os.WriteFile(badZone, []byte("timeZone: Mars/Olympus\n"), 0644))
	_, err := LoadFromPath(badZone)
	assert.Error(t, err)

	for i, content := range []string{
		"overtimeMultiplier: 0.5\n",
		"minRestHours: .inf\n",
		"minRestHours: 1e12\n",
		"maxShiftHours: .nan\n",
		"overtimeMultiplier: .inf\n",
	} {
		badValue := filepath.Join(dir, fmt.Sprintf("value%d.yaml", i))
		require.NoError(t, os.WriteFile(badValue, []byte(content), 0644))
		_, err = LoadFromPath(badValue)
		assert.Error(t, err, content)
	}

	_, err = LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyRules(t *testing.T) {
	p := Default()

	next, ignored, err := p.ApplyRules([]string{
		"restPeriodHours=12",
		"allowOvertime = false",
		"每位员工每周至少休息两天",
		"unknownKey=1",
	})
	require.NoError(t, err)

	assert.Equal(t, 12.0, next.MinRestHours)
	assert.False(t, next.AllowOvertime)
	assert.Equal(t, []string{"每位员工每周至少休息两天", "unknownKey=1"}, ignored)

	// 原策略不应被修改
	assert.Equal(t, DefaultMinRestHours, p.MinRestHours)
	assert.True(t, p.AllowOvertime)
}

func TestApplyRules_InvalidValue(t *testing.T) {
	p := Default()

	for _, rule := range []string{
		"restPeriodHours=abc",
		"overtimeMultiplier=0.5",
		"restPeriodHours=1e12",
		"restPeriodHours=Inf",
		"restPeriodHours=NaN",
		"maxShiftHours=Inf",
		"maxShiftHours=200",
		"minShiftHours=-Inf",
		"overtimeMultiplier=Inf",
		"overtimeMultiplier=11",
		"nightPremiumRate=+Inf",
		"nightPremiumCapHours=1e308",
	} {
		t.Run(rule, func(t *testing.T) {
			_, _, err := p.ApplyRules([]string{rule})
			require.Error(t, err)
			assert.True(t, domain.IsInputError(err))
		})
	}
}

func TestApplyRules_MinRestStaysPositive(t *testing.T) {
	next, _, err := Default().ApplyRules([]string{"restPeriodHours=168"})
	require.NoError(t, err)
	assert.Equal(t, 168*time.Hour, next.MinRest())
}

func TestFingerprint(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.MinRestHours = 12
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
