package logger

import (
	"testing"

	"rfm-segments/pkg/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "debug", Environment: "production"})
	require.Equal(t, logrus.DebugLevel, Log.GetLevel())
	require.IsType(t, &logrus.JSONFormatter{}, Log.Formatter)

	Init(&config.AppConfig{LogLevel: "loud", Environment: "development"})
	require.Equal(t, logrus.InfoLevel, Log.GetLevel())
	require.IsType(t, &logrus.TextFormatter{}, Log.Formatter)
}
