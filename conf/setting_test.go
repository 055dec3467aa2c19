package conf

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	flags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSetting(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    func(s *Setting)
		wantErr string
	}{
		{
			name: "empty",
			in:   "",
			want: func(s *Setting) {},
		},
		{
			name: "partial",
			in: heredoc.Doc(`
				[rotation]
				steps = 4

				[teleport]
				p0 = 0.5
			`),
			want: func(s *Setting) {
				s.Rotation.Steps = 4
				s.Teleport.P0 = 0.5
			},
		},
		{
			name: "ansatz",
			in: heredoc.Doc(`
				[ansatz]
				qubits = 2
				theta = [1.0, 2.0]

				[shots]
				counts = [5, 50]
			`),
			want: func(s *Setting) {
				s.Ansatz = AnsatzSetting{Qubits: 2, Theta: []float64{1, 2}}
				s.Shots.Counts = []int{5, 50}
			},
		},
		{
			name:    "syntax",
			in:      "[rotation\nsteps = 1",
			wantErr: "parse setting",
		},
		{
			name:    "bad p0",
			in:      "[teleport]\np0 = 1.5",
			wantErr: "teleport.p0(1.5)",
		},
		{
			name:    "theta mismatch",
			in:      "[ansatz]\nqubits = 4",
			wantErr: "ansatz.theta has 3 values for 4 qubits",
		},
		{
			name:    "zero shots",
			in:      "[shots]\ncounts = [10, 0]",
			wantErr: "shots.counts contains 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSetting(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			want := NewDefaultSetting()
			tt.want(want)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseSettingFromPath(t *testing.T) {
	dir := t.TempDir()

	s, err := ParseSettingFromPath(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultSetting(), s)

	path := filepath.Join(dir, "setting.toml")
	require.NoError(t, os.WriteFile(path, []byte("[histogram]\nwidth = 20\n"), 0o600))
	s, err = ParseSettingFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 20, s.Histogram.Width)
}

func TestConfDefaults(t *testing.T) {
	var c Conf
	_, err := flags.ParseArgs(&c, []string{"--log-level", "debug", "--seed", "7"})
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, uint64(7), c.Seed)
	assert.Equal(t, "text", c.Output)
	assert.Equal(t, 7, c.LogRotationMaxDays)

	_, err = flags.ParseArgs(&c, []string{"--output", "yaml"})
	assert.Error(t, err)
}

func TestOverrideTheta(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		want    []float64
		wantErr string
	}{
		{"symbolic", "pi/2, pi/4", []float64{math.Pi / 2, math.Pi / 4}, ""},
		{"mixed", "0.1,-pi,2*pi/3,1", []float64{0.1, -math.Pi, 2 * math.Pi / 3, 1}, ""},
		{"single angle", "pi", nil, "ansatz.qubits(1) must be at least 2"},
		{"garbage", "pi/2,half", nil, `angle 1: cannot parse "half"`},
		{"empty", "", nil, "theta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefaultSetting()
			err := s.OverrideTheta(tt.list)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), s.Ansatz.Qubits)
			assert.InDeltaSlice(t, tt.want, s.Ansatz.Theta, 1e-12)
		})
	}
}
