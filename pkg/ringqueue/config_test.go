package ringqueue

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/c360/ringqueue/errors"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"bounded", func(c *Config) { c.MaxCapacity = 64 }, false},
		{"zero initial capacity", func(c *Config) { c.InitialCapacity = 0 }, true},
		{"growth factor of one", func(c *Config) { c.GrowthFactor = 1 }, true},
		{"negative max capacity", func(c *Config) { c.MaxCapacity = -1 }, true},
		{"max below initial", func(c *Config) { c.InitialCapacity = 10; c.MaxCapacity = 5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
			assert.True(t, stderrors.Is(err, errors.ErrInvalidData))
		})
	}
}

func TestConfig_Decode(t *testing.T) {
	want := Config{InitialCapacity: 16, GrowthFactor: 1.5, MaxCapacity: 1024}

	var fromJSON Config
	require.NoError(t, json.Unmarshal(
		[]byte(`{"initial_capacity": 16, "growth_factor": 1.5, "max_capacity": 1024}`), &fromJSON))
	assert.Equal(t, want, fromJSON)

	var fromYAML Config
	require.NoError(t, yaml.Unmarshal(
		[]byte("initial_capacity: 16\ngrowth_factor: 1.5\nmax_capacity: 1024\n"), &fromYAML))
	assert.Equal(t, want, fromYAML)
}

func TestNewFromConfig(t *testing.T) {
	q, err := NewFromConfig[int](Config{InitialCapacity: 4, GrowthFactor: 1.5, MaxCapacity: 7})
	require.NoError(t, err)
	assert.Equal(t, 4, q.Capacity())

	enqueueRange(t, q, 0, 5)
	assert.Equal(t, 6, q.Capacity())
	enqueueRange(t, q, 5, 7)
	assert.Equal(t, 7, q.Capacity())

	err = q.Enqueue(7)
	assert.True(t, stderrors.Is(err, errors.ErrAllocation))
}

func TestNewFromConfig_OptionsOverride(t *testing.T) {
	q, err := NewFromConfig[int](DefaultConfig(), WithGrowthFactor[int](3))
	require.NoError(t, err)

	enqueueRange(t, q, 0, 3)
	assert.Equal(t, 6, q.Capacity())
}

func TestNewFromConfig_Invalid(t *testing.T) {
	_, err := NewFromConfig[int](Config{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Contains(t, err.Error(), "ringqueue.NewFromConfig")
}
