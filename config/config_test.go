package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velardesign/portfolio-backend/config"
)

func TestTypedGetters(t *testing.T) {
	c := map[string]string{
		"PORT":        "9090",
		"LIMIT":       "25",
		"BAD_INT":     "banana",
		"FLAG":        "true",
		"EMPTY_VALUE": "",
	}

	assert.Equal(t, "9090", config.GetString(c, "PORT", "8080"))
	assert.Equal(t, "8080", config.GetString(c, "MISSING", "8080"))
	assert.Equal(t, "", config.GetString(c, "EMPTY_VALUE", "fallback"))

	assert.Equal(t, 25, config.GetInt(c, "LIMIT", 12))
	assert.Equal(t, 12, config.GetInt(c, "BAD_INT", 12))
	assert.Equal(t, 12, config.GetInt(c, "MISSING", 12))

	assert.True(t, config.GetBool(c, "FLAG", false))
	assert.False(t, config.GetBool(c, "MISSING", false))

	assert.Equal(t, "8080", config.GetString(nil, "PORT", "8080"))
}

func TestDatabaseDSN(t *testing.T) {
	c := map[string]string{
		"DATABASE_HOST":     "db.internal",
		"DATABASE_USER":     "portfolio",
		"DATABASE_PASSWORD": "hunter2",
		"DATABASE_NAME":     "portfolio",
		"DATABASE_PORT":     "5433",
		"DATABASE_SSLMODE":  "require",
	}

	assert.Equal(t,
		"host=db.internal user=portfolio password=hunter2 dbname=portfolio port=5433 sslmode=require",
		config.DatabaseDSN(c))
}
