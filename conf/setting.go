package conf

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"qlab/circuit"
)

// Setting carries the exercise parameters read from the TOML setting file.
type Setting struct {
	Rotation  RotationSetting  `toml:"rotation"`
	Shots     ShotSetting      `toml:"shots"`
	Teleport  TeleportSetting  `toml:"teleport"`
	Ansatz    AnsatzSetting    `toml:"ansatz"`
	Histogram HistogramSetting `toml:"histogram"`
}

type RotationSetting struct {
	Steps int `toml:"steps"`
}

type ShotSetting struct {
	Counts []int `toml:"counts"`
}

type TeleportSetting struct {
	P0    float64 `toml:"p0"`
	Shots int     `toml:"shots"`
}

type AnsatzSetting struct {
	Qubits int       `toml:"qubits"`
	Theta  []float64 `toml:"theta"`
}

type HistogramSetting struct {
	Width int `toml:"width"`
}

// NewDefaultSetting returns the values used when no setting file exists.
func NewDefaultSetting() *Setting {
	return &Setting{
		Rotation:  RotationSetting{Steps: 10},
		Shots:     ShotSetting{Counts: []int{10, 100, 1000, 10000}},
		Teleport:  TeleportSetting{P0: 0.8, Shots: 10000},
		Ansatz:    AnsatzSetting{Qubits: 3, Theta: []float64{0.1, 0.2, 0.3}},
		Histogram: HistogramSetting{Width: 40},
	}
}

// ParseSettingFromPath reads the setting file at path over the defaults.
// A missing file is not an error.
func ParseSettingFromPath(path string) (*Setting, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Debug(fmt.Sprintf("no setting file at %s, using defaults", path))
			return NewDefaultSetting(), nil
		}
		return nil, errors.Wrapf(err, "read setting %s", path)
	}
	return ParseSetting(string(b))
}

// ParseSetting decodes a TOML document over the defaults and validates it.
func ParseSetting(tomlString string) (*Setting, error) {
	s := NewDefaultSetting()
	if _, err := toml.Decode(tomlString, s); err != nil {
		zap.L().Error(fmt.Sprintf("failed to parse setting/reason:%s", err))
		return nil, errors.Wrap(err, "parse setting")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	zap.L().Debug(fmt.Sprintf("Setting is %+v", *s))
	return s, nil
}

// OverrideTheta replaces the ansatz angles with a comma separated list. The
// ansatz gets one qubit per angle.
func (s *Setting) OverrideTheta(list string) error {
	vals, err := circuit.ParseAngles(list)
	if err != nil {
		return errors.Wrap(err, "theta")
	}
	s.Ansatz = AnsatzSetting{Qubits: len(vals), Theta: vals}
	return s.Validate()
}

// Validate reports the first value no exercise can run with.
func (s *Setting) Validate() error {
	switch {
	case s.Rotation.Steps <= 0:
		return errors.Errorf("rotation.steps(%d) must be greater than 0", s.Rotation.Steps)
	case len(s.Shots.Counts) == 0:
		return errors.New("shots.counts is empty")
	case s.Teleport.P0 < 0 || s.Teleport.P0 > 1:
		return errors.Errorf("teleport.p0(%g) must be in [0, 1]", s.Teleport.P0)
	case s.Teleport.Shots <= 0:
		return errors.Errorf("teleport.shots(%d) must be greater than 0", s.Teleport.Shots)
	case s.Ansatz.Qubits < 2:
		return errors.Errorf("ansatz.qubits(%d) must be at least 2", s.Ansatz.Qubits)
	case len(s.Ansatz.Theta) != s.Ansatz.Qubits:
		return errors.Errorf("ansatz.theta has %d values for %d qubits", len(s.Ansatz.Theta), s.Ansatz.Qubits)
	}
	for _, n := range s.Shots.Counts {
		if n <= 0 {
			return errors.Errorf("shots.counts contains %d", n)
		}
	}
	return nil
}
