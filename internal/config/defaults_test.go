package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/previoip/srcds-resource-manager/internal/domain"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name        string
		configLines []string
		env         map[string]string
		key         string
		wantValue   string
		wantFound   bool
	}{
		{
			name:        "key exists in config file",
			configLines: []string{"rate_limit=5"},
			key:         "rate_limit",
			wantValue:   "5",
			wantFound:   true,
		},
		{
			name:        "key exists in defaults but not in file",
			configLines: []string{"# nothing"},
			key:         "max_retries",
			wantValue:   "3",
			wantFound:   true,
		},
		{
			name:        "hidden default",
			configLines: []string{"# nothing"},
			key:         "workshop_api",
			wantValue:   domain.DefaultWorkshopAPI,
			wantFound:   true,
		},
		{
			name:        "dynamic platform default",
			configLines: []string{"# nothing"},
			key:         "platform",
			wantValue:   runtime.GOOS,
			wantFound:   true,
		},
		{
			name:        "config overrides default",
			configLines: []string{"log_level=error"},
			key:         "log_level",
			wantValue:   "error",
			wantFound:   true,
		},
		{
			name:        "env overrides config",
			configLines: []string{"platform=linux"},
			env:         map[string]string{"SRCDSRM_PLATFORM": "windows"},
			key:         "platform",
			wantValue:   "windows",
			wantFound:   true,
		},
		{
			name:        "env log level",
			configLines: []string{"log_level=error"},
			env:         map[string]string{"SRCDSRM_LOG_LEVEL": "debug"},
			key:         "log_level",
			wantValue:   "debug",
			wantFound:   true,
		},
		{
			name:        "key not in config or defaults",
			configLines: []string{"# nothing"},
			key:         "nonexistent_key",
			wantFound:   false,
		},
		{
			name:        "custom key in config",
			configLines: []string{"custom_key=custom_value"},
			key:         "custom_key",
			wantValue:   "custom_value",
			wantFound:   true,
		},
		{
			name:        "broken file falls back to default",
			configLines: []string{"not a pair"},
			key:         "timeout",
			wantValue:   "30s",
			wantFound:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempConfig(t)
			writeConfig(t, path, tt.configLines...)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			gotValue, gotFound := Get(path, tt.key)
			require.Equal(t, tt.wantFound, gotFound, "found mismatch")
			if tt.wantFound {
				require.Equal(t, tt.wantValue, gotValue, "value mismatch")
			}
		})
	}
}

func TestGet_DynamicDefaults(t *testing.T) {
	path := tempConfig(t)

	appinfo, ok := Get(path, "appinfo")
	require.True(t, ok)
	require.Equal(t, dynamicDefaults["appinfo"](), appinfo)

	dl, ok := Get(path, "download_dir")
	require.True(t, ok)
	require.Equal(t, dynamicDefaults["download_dir"](), dl)
}

func TestDefaults_CoverEveryKey(t *testing.T) {
	require.Len(t, Defaults, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		_, ok := Defaults[key.Name]
		require.True(t, ok, "missing default for %s", key.Name)
	}
}

func TestGetAll(t *testing.T) {
	tests := []struct {
		name         string
		configLines  []string
		env          map[string]string
		wantContains map[string]string
		wantLen      int
	}{
		{
			name:        "empty config returns all defaults",
			configLines: []string{"# nothing"},
			wantContains: map[string]string{
				"rate_limit": "2",
				"enable_log": "true",
				"log_level":  "info",
				"color":      "auto",
			},
			wantLen: len(Defaults),
		},
		{
			name:        "config overrides some defaults",
			configLines: []string{"rate_limit=10", "log_level=error"},
			wantContains: map[string]string{
				"rate_limit": "10",
				"log_level":  "error",
				"enable_log": "true",
			},
			wantLen: len(Defaults),
		},
		{
			name:        "config has custom keys",
			configLines: []string{"custom_key1=value1", "custom_key2=value2"},
			wantContains: map[string]string{
				"custom_key1": "value1",
				"custom_key2": "value2",
				"max_retries": "3",
			},
			wantLen: len(Defaults) + 2,
		},
		{
			name:        "env wins over everything",
			configLines: []string{"appinfo=/from/file.json"},
			env:         map[string]string{"SRCDSRM_APPINFO": "/from/env.json"},
			wantContains: map[string]string{
				"appinfo": "/from/env.json",
			},
			wantLen: len(Defaults),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempConfig(t)
			writeConfig(t, path, tt.configLines...)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := GetAll(path)
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)

			for key, expectedValue := range tt.wantContains {
				actualValue, exists := got[key]
				require.True(t, exists, "key %s should exist", key)
				require.Equal(t, expectedValue, actualValue, "value for key %s mismatch", key)
			}
		})
	}
}

func TestGetAll_NoConfigFile(t *testing.T) {
	path := tempConfig(t)

	got, err := GetAll(path)
	require.NoError(t, err)
	require.Len(t, got, len(Defaults))
	require.Equal(t, runtime.GOOS, got["platform"])
	require.Equal(t, "30s", got["timeout"])
}

func TestEnv_Overrides(t *testing.T) {
	t.Setenv("SRCDSRM_APPINFO", "/srv/appinfo.json")
	t.Setenv("SRCDSRM_PLATFORM", "")
	t.Setenv("SRCDSRM_LOG_LEVEL", "warn")

	var e Env
	require.NoError(t, ParseEnv(&e))
	require.Equal(t, map[string]string{
		"appinfo":   "/srv/appinfo.json",
		"log_level": "warn",
	}, e.Overrides())
}
