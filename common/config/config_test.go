package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustcentric/requestlog/common/env"
	"github.com/trustcentric/requestlog/common/test"
)

// writeTempConfig creates a temporary config directory holding <appEnv>.yaml
// with the given content, registering cleanup.
func writeTempConfig(t *testing.T, appEnv, content string) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "config-test-*")
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(tempDir, appEnv+".yaml"), []byte(content), 0644)
	require.NoError(t, err)

	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })
	return tempDir
}

func setAppEnv(t *testing.T, appEnv string) {
	t.Helper()
	require.NoError(t, os.Setenv(env.ApplicationEnvKey, appEnv))
	t.Cleanup(func() { _ = os.Unsetenv(env.ApplicationEnvKey) })
}

func TestLoadMiddlewareConfig(t *testing.T) {
	yamlContent := `
httpDebug: true
trustProxy: true
timeout: 30s
`
	setAppEnv(t, "development")
	tempDir := writeTempConfig(t, "development", yamlContent)

	var conf Config
	err := Load(&conf, test.NewLogger(t), WithAbsolutePath(tempDir))
	require.NoError(t, err)

	require.True(t, conf.HTTPDebug)
	require.False(t, conf.HTTPTrace)
	require.True(t, conf.TrustProxy)
	require.Equal(t, 30*time.Second, conf.Timeout)
}

func TestLoadEnvIndirection(t *testing.T) {
	yamlContent := `
httpDebug: false
secret: env://CONFIG_TEST_SECRET
`
	setAppEnv(t, "development")
	tempDir := writeTempConfig(t, "development", yamlContent)

	require.NoError(t, os.Setenv("CONFIG_TEST_SECRET", "s3cret"))
	t.Cleanup(func() { _ = os.Unsetenv("CONFIG_TEST_SECRET") })

	var conf struct {
		HTTPDebug bool   `mapstructure:"httpDebug"`
		Secret    string `mapstructure:"secret"`
	}
	err := Load(&conf, test.NewLogger(t), WithAbsolutePath(tempDir))
	require.NoError(t, err)
	require.Equal(t, "s3cret", conf.Secret)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	setAppEnv(t, "not-an-env")

	var conf Config
	err := Load(&conf, test.NewLogger(t))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	setAppEnv(t, "development")
	tempDir, err := os.MkdirTemp("", "config-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	var conf Config
	err = Load(&conf, test.NewLogger(t), WithAbsolutePath(tempDir))
	require.Error(t, err)
}
