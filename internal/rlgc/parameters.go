package rlgc

// Parameters are the per-unit-length line parameters at one frequency.
type Parameters struct {
	R float64 `json:"R_ohm_per_m"`
	L float64 `json:"L_h_per_m"`
	G float64 `json:"G_s_per_m"`
	C float64 `json:"C_f_per_m"`

	Z0         float64    `json:"Z0_ohm"`
	Gamma      complex128 `json:"-"`
	Alpha      float64    `json:"alpha_np_per_m"`
	Beta       float64    `json:"beta_rad_per_m"`
	VPhase     float64    `json:"v_phase_m_per_s"`
	EpsilonEff float64    `json:"epsilon_eff"`

	Frequency float64 `json:"frequency_hz"`

	// InductanceBranch records which step of the inductance chain won.
	InductanceBranch Branch `json:"inductance_branch"`
}

// NewParameters combines primary values with their secondary quantities.
func NewParameters(r, l, g, c, f float64) *Parameters {
	s := SecondaryParameters(r, l, g, c, f)
	return &Parameters{
		R:          r,
		L:          l,
		G:          g,
		C:          c,
		Z0:         s.Z0,
		Gamma:      s.Gamma,
		Alpha:      s.Alpha,
		Beta:       s.Beta,
		VPhase:     s.VPhase,
		EpsilonEff: s.EpsilonEff,
		Frequency:  f,
	}
}

// Wavelength is the guided wavelength, or 0 when the line does not
// propagate.
func (p *Parameters) Wavelength() float64 {
	if p.Frequency == 0 {
		return 0
	}
	return p.VPhase / p.Frequency
}

// LossDBPerMeter converts alpha to dB/m.
func (p *Parameters) LossDBPerMeter() float64 {
	return 8.685889638065037 * p.Alpha
}
