package matching

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights_Valid(t *testing.T) {
	w := DefaultWeights()
	require.NoError(t, w.Validate())
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
}

func TestValidate_SumBand(t *testing.T) {
	tests := []struct {
		name    string
		adjust  float64
		wantErr bool
	}{
		{"exact", 0, false},
		{"slightly high", 0.009, false},
		{"slightly low", -0.009, false},
		{"too high", 0.02, true},
		{"too low", -0.05, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			w.RequiredSkills += tt.adjust
			err := w.Validate()
			if tt.wantErr {
				var cfgErr *ConfigurationError
				require.True(t, errors.As(err, &cfgErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_RejectsNegative(t *testing.T) {
	w := DefaultWeights()
	w.Education = -0.15
	w.RequiredSkills += 0.30
	err := w.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "education")
}

func TestWeightsFromMap(t *testing.T) {
	w, err := WeightsFromMap(DefaultWeights().AsMap())
	require.NoError(t, err)
	assert.Equal(t, DefaultWeights(), w)
}

func TestWeightsFromMap_MissingKey(t *testing.T) {
	m := DefaultWeights().AsMap()
	delete(m, "role_alignment")
	m["required_skills"] += 0.10

	_, err := WeightsFromMap(m)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "missing weights")
}

func TestWeightsFromMap_UnknownKey(t *testing.T) {
	m := DefaultWeights().AsMap()
	m["salary"] = 0.0

	_, err := WeightsFromMap(m)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}

func TestWeightsFromMap_BadSum(t *testing.T) {
	m := DefaultWeights().AsMap()
	m["experience"] = 0.5

	_, err := WeightsFromMap(m)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
}
