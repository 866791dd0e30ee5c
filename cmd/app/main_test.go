package main

import (
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	logger := initLogger(false)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = initLogger(true)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestVersionMatchesMetadata(t *testing.T) {
	meta := viper.New()
	meta.SetConfigFile("../../FyneApp.toml")
	require.NoError(t, meta.ReadInConfig())
	assert.Equal(t, AppID, meta.GetString("details.id"))
	assert.Equal(t, AppVersion, meta.GetString("details.version"))

	src, err := os.ReadFile("main.go")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(src), "// Version: "+AppVersion+" "), "file header carries the release version")
	assert.True(t, strings.HasPrefix(string(src), "// Instafilter"))
}
