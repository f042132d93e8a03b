package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		PlatformsFile:  "platforms.json",
		PrivateKeyFile: "id_rsa",
		PublicKeyFile:  "id_rsa.pub",
		Timeout:        15,
		Expiration:     60,
		LogLevel:       "WARN",
	}, cfg)
	assert.Equal(t, 15*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, 60*time.Second, cfg.ExpirationDuration())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ltitoken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("platforms_file: /etc/lti/platforms.json\ntimeout: 5\nlog_level: debug\n"), 0o600))
	t.Setenv("LTITOKEN_EXPIRATION", "120")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/lti/platforms.json", cfg.PlatformsFile)
	assert.Equal(t, 5, cfg.Timeout)
	assert.Equal(t, 120, cfg.Expiration)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "id_rsa", cfg.PrivateKeyFile)
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ltitoken.yaml"), []byte("public_key_file: keys/platform.pub\n"), 0o600))
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "keys/platform.pub", cfg.PublicKeyFile)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	cases := map[string]string{
		"LTITOKEN_TIMEOUT":    "0",
		"LTITOKEN_EXPIRATION": "-1",
		"LTITOKEN_LOG_LEVEL":  "chatty",
	}
	for env, val := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv(env, val)
			cfg, err := Load("")
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestKeyFiles(t *testing.T) {
	cfg := &Config{PrivateKeyFile: "id_rsa", PublicKeyFile: "id_rsa.pub"}

	priv, pub := cfg.KeyFiles(Platform{})
	assert.Equal(t, "id_rsa", priv)
	assert.Equal(t, "id_rsa.pub", pub)

	priv, pub = cfg.KeyFiles(Platform{PrivateKey: "moodle.key", PublicKey: "moodle.pub"})
	assert.Equal(t, "moodle.key", priv)
	assert.Equal(t, "moodle.pub", pub)
}

func TestConfigString(t *testing.T) {
	cfg := &Config{PlatformsFile: "p.json", Timeout: 3}
	assert.Contains(t, cfg.String(), "PlatformsFile: p.json")
	assert.Contains(t, cfg.String(), "Timeout: 3")
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
