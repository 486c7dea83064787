package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TagKey:           "environment",
		TagValue:         "production",
		SubnetID:         "subnet-0a1b2c3d",
		AvailabilityZone: "eu-west-1a",
		HsmCount:         2,
		HsmType:          DefaultHsmType,
	}
}

func TestFromArgs(t *testing.T) {
	cfg, err := FromArgs([]string{"environment", "production", "subnet-0a1b2c3d", "eu-west-1a", "2"})
	require.NoError(t, err)

	assert.Equal(t, "environment", cfg.TagKey)
	assert.Equal(t, "production", cfg.TagValue)
	assert.Equal(t, "subnet-0a1b2c3d", cfg.SubnetID)
	assert.Equal(t, "eu-west-1a", cfg.AvailabilityZone)
	assert.Equal(t, 2, cfg.HsmCount)
	assert.Equal(t, DefaultHsmType, cfg.HsmType)
}

func TestFromArgs_WrongArgCount(t *testing.T) {
	_, err := FromArgs([]string{"environment", "production"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 5 arguments")
}

func TestFromArgs_NonIntegerCount(t *testing.T) {
	_, err := FromArgs([]string{"environment", "production", "subnet-0a1b2c3d", "eu-west-1a", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hsm_count must be an integer")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "missing tag key",
			mutate:  func(c *Config) { c.TagKey = "" },
			wantErr: "tag_key is required",
		},
		{
			name:    "missing tag value",
			mutate:  func(c *Config) { c.TagValue = "" },
			wantErr: "tag_value is required",
		},
		{
			name:    "reserved tag prefix",
			mutate:  func(c *Config) { c.TagKey = "aws:cloudformation:stack" },
			wantErr: "reserved aws: prefix",
		},
		{
			name:    "bad subnet id",
			mutate:  func(c *Config) { c.SubnetID = "sn-12345" },
			wantErr: "must start with subnet-",
		},
		{
			name:    "bad availability zone",
			mutate:  func(c *Config) { c.AvailabilityZone = "eu-west-1" },
			wantErr: "invalid availability_zone",
		},
		{
			name:    "zero hsm count",
			mutate:  func(c *Config) { c.HsmCount = 0 },
			wantErr: "out of range",
		},
		{
			name:    "hsm count above quota",
			mutate:  func(c *Config) { c.HsmCount = MaxHsmsPerCluster + 1 },
			wantErr: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cluster.yaml")
	data := `tag_key: environment
tag_value: production
subnet_id: subnet-0a1b2c3d
availability_zone: eu-west-1a
hsm_count: 3
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "environment", cfg.TagKey)
	assert.Equal(t, 3, cfg.HsmCount)
	assert.Equal(t, DefaultHsmType, cfg.HsmType, "hsm_type should default when omitted")
}

func TestLoadFile_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cluster.yaml")
	data := `tag_key: environment
tag_value: production
subnet_id: subnet-0a1b2c3d
availability_zone: eu-west-1a
hsm_count: 0
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
