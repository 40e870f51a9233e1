package helpers

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	cases := []struct {
		env, level string
		want       logrus.Level
	}{
		{"development", "", logrus.DebugLevel},
		{"production", "", logrus.InfoLevel},
		{"production", "warn", logrus.WarnLevel},
		{"development", "loud", logrus.DebugLevel},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NewLogger("app", tc.env, tc.level).GetLevel(), tc.env+"/"+tc.level)
	}
}

func TestNewLogger_Formatter(t *testing.T) {
	assert.IsType(t, &logrus.TextFormatter{}, NewLogger("app", "development", "").Formatter)
	assert.IsType(t, &logrus.JSONFormatter{}, NewLogger("app", "staging", "").Formatter)
}
