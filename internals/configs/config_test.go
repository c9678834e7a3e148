package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFeePolicyConfig_Defaults(t *testing.T) {
	for _, k := range []string{"BUS_FEE_POLICY", "BUS_FEE_SCHOOL_FIRST", "BUS_FEE_BUS_CAP", "BUS_FEE_STANDARD", "BUS_FEE_BUS_PORTION"} {
		t.Setenv(k, "")
	}
	cfg := LoadFeePolicyConfig()
	assert.Equal(t, 17.0, cfg.SchoolFirst)
	assert.Equal(t, 10.0, cfg.BusCap)
	assert.Equal(t, 28.0, cfg.StandardFee)
	assert.Equal(t, 10.0, cfg.BusPortion)
}

func TestLoadFeePolicyConfig_Overrides(t *testing.T) {
	t.Setenv("BUS_FEE_POLICY", "fixedBusPortion_v1")
	t.Setenv("BUS_FEE_SCHOOL_FIRST", "20")
	t.Setenv("BUS_FEE_BUS_CAP", "bogus")
	t.Setenv("BUS_FEE_REPORT_CRON", "0 2 1 * *")

	cfg := LoadFeePolicyConfig()
	assert.Equal(t, "fixedBusPortion_v1", cfg.Version)
	assert.Equal(t, 20.0, cfg.SchoolFirst)
	assert.Equal(t, 10.0, cfg.BusCap)
	assert.Equal(t, "0 2 1 * *", cfg.ReportCron)
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("X_FLAG", "yes")
	assert.True(t, GetEnvBool("X_FLAG", false))
	t.Setenv("X_FLAG", "0")
	assert.False(t, GetEnvBool("X_FLAG", true))
	t.Setenv("X_FLAG", "")
	assert.True(t, GetEnvBool("X_FLAG", true))
}

func TestDBConfig(t *testing.T) {
	cfg := DBConfig{User: "u", Password: "p", Host: "h", Port: "5432", Name: "bus", SSLMode: "disable"}
	assert.NoError(t, cfg.Validate())
	assert.Contains(t, cfg.DSN(), "postgres://u:p@h:5432/bus?sslmode=disable")

	assert.Error(t, DBConfig{}.Validate())
}
