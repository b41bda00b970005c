// Package control implements a generic PID controller.
package control

import (
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/gzmath/utils"
)

// PIDConfig holds the gains and limits of a PID. A limit pair whose max is smaller than its min
// disables that limit.
type PIDConfig struct {
	PGain     float64 `json:"p_gain" yaml:"p_gain"`
	IGain     float64 `json:"i_gain" yaml:"i_gain"`
	DGain     float64 `json:"d_gain" yaml:"d_gain"`
	IMax      float64 `json:"i_max" yaml:"i_max"`
	IMin      float64 `json:"i_min" yaml:"i_min"`
	CmdMax    float64 `json:"cmd_max" yaml:"cmd_max"`
	CmdMin    float64 `json:"cmd_min" yaml:"cmd_min"`
	CmdOffset float64 `json:"cmd_offset" yaml:"cmd_offset"`
}

// DefaultPIDConfig returns zero gains with both limits disabled.
func DefaultPIDConfig() PIDConfig {
	return PIDConfig{IMax: -1, CmdMax: -1}
}

// Validate returns every non-finite field.
func (cfg PIDConfig) Validate() error {
	var err error
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"p_gain", cfg.PGain},
		{"i_gain", cfg.IGain},
		{"d_gain", cfg.DGain},
		{"i_max", cfg.IMax},
		{"i_min", cfg.IMin},
		{"cmd_max", cfg.CmdMax},
		{"cmd_min", cfg.CmdMin},
		{"cmd_offset", cfg.CmdOffset},
	} {
		if !utils.IsFinite(field.value) {
			err = multierr.Append(err, errors.Errorf("pid %s must be finite, got %v", field.name, field.value))
		}
	}
	return err
}

// PID is a proportional, integral, derivative controller. Update computes a command that
// drives a state error to zero. It is safe for concurrent use.
type PID struct {
	mu  sync.Mutex
	cfg PIDConfig

	pErrLast float64
	pErr     float64
	iErr     float64
	dErr     float64
	cmd      float64
}

// NewPID returns a PID with the given configuration.
func NewPID(cfg PIDConfig) (*PID, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PID{cfg: cfg}, nil
}

// Config returns the gains and limits.
func (p *PID) Config() PIDConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// SetConfig replaces the gains and limits. The error state is kept.
func (p *PID) SetConfig(cfg PIDConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
	return nil
}

// Update returns the command for the given error (state minus target) after dt has elapsed.
// A zero or negative dt, or a non-finite error, returns 0 and leaves the state untouched.
func (p *PID) Update(stateErr float64, dt time.Duration) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	seconds := dt.Seconds()
	if seconds <= 0 || !utils.IsFinite(stateErr) {
		return 0
	}

	p.pErrLast = p.pErr
	p.pErr = stateErr

	// Integral term with anti-windup: the accumulated error is pulled back to what the
	// clamped term represents.
	p.iErr += seconds * p.pErr
	iTerm := p.cfg.IGain * p.iErr
	if p.cfg.IMax >= p.cfg.IMin {
		clamped := utils.Clamp(iTerm, p.cfg.IMin, p.cfg.IMax)
		if clamped != iTerm && math.Abs(p.cfg.IGain) >= 1e-10 {
			p.iErr = clamped / p.cfg.IGain
		}
		iTerm = clamped
	}

	p.dErr = (p.pErr - p.pErrLast) / seconds

	p.cmd = p.cfg.CmdOffset - p.cfg.PGain*p.pErr - iTerm - p.cfg.DGain*p.dErr
	if p.cfg.CmdMax >= p.cfg.CmdMin {
		p.cmd = utils.Clamp(p.cmd, p.cfg.CmdMin, p.cfg.CmdMax)
	}
	return p.cmd
}

// Reset zeroes the error state and the command.
func (p *PID) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pErrLast, p.pErr, p.iErr, p.dErr, p.cmd = 0, 0, 0, 0, 0
}

// Errors returns the proportional, integral and derivative errors of the last Update.
func (p *PID) Errors() (pe, ie, de float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pErr, p.iErr, p.dErr
}

// Cmd returns the last command.
func (p *PID) Cmd() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd
}

// SetCmd overrides the last command.
func (p *PID) SetCmd(cmd float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cmd = cmd
}
