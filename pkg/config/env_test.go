package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_ENV_STRING", "  :9090 ")
	assert.Equal(t, ":9090", GetEnvString("TEST_ENV_STRING", ":8080"))
	assert.Equal(t, ":8080", GetEnvString("TEST_ENV_STRING_UNSET", ":8080"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid", value: "7", want: 7},
		{name: "negative", value: "-3", want: -3},
		{name: "invalid falls back", value: "ten", want: 10},
		{name: "trailing garbage falls back", value: "5x", want: 10},
		{name: "empty falls back", value: "", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("TEST_ENV_INT", 10))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_ENV_FLOAT", "2.5")
	assert.InDelta(t, 2.5, GetEnvFloat("TEST_ENV_FLOAT", 1), 1e-9)

	t.Setenv("TEST_ENV_FLOAT", "fast")
	assert.InDelta(t, 1.0, GetEnvFloat("TEST_ENV_FLOAT", 1), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_ENV_BOOL", "false")
	assert.False(t, GetEnvBool("TEST_ENV_BOOL", true))

	t.Setenv("TEST_ENV_BOOL", "1")
	assert.True(t, GetEnvBool("TEST_ENV_BOOL", false))

	t.Setenv("TEST_ENV_BOOL", "yes please")
	assert.True(t, GetEnvBool("TEST_ENV_BOOL", true))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_ENV_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_ENV_DURATION", time.Second))

	t.Setenv("TEST_ENV_DURATION", "12")
	assert.Equal(t, 12*time.Second, GetEnvDuration("TEST_ENV_DURATION", 12*time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_ENV_LIST", "https://a.example, ,http://localhost:3000 ")
	assert.Equal(t,
		[]string{"https://a.example", "http://localhost:3000"},
		GetEnvStringList("TEST_ENV_LIST", []string{"*"}))

	t.Setenv("TEST_ENV_LIST", " , ")
	assert.Equal(t, []string{"*"}, GetEnvStringList("TEST_ENV_LIST", []string{"*"}))
}

func TestValidateDurationRange(t *testing.T) {
	assert.NoError(t, ValidateDurationRange(12*time.Second, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(0, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(2*time.Minute, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(time.Second, time.Minute, time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.NoError(t, ValidatePositiveDuration(time.Millisecond))
}
