package stats

import "math"

// Cutoffs are the significance thresholds applied to each statistic.
type Cutoffs struct {
	// NES is significant when |NES| >= this value.
	NES float64
	// FDR is significant when <= this value.
	FDR float64
	// PValue is significant when <= this value.
	PValue float64
	// Strict requires both the FDR and p-value cutoffs for overall
	// significance instead of the FDR cutoff alone.
	Strict bool
}

// DefaultCutoffs returns the standard GSEA thresholds.
func DefaultCutoffs() Cutoffs {
	return Cutoffs{NES: 1.0, FDR: 0.25, PValue: 0.05}
}

// Significance records which cutoffs a set of measurements meets.
type Significance struct {
	NES     bool
	FDR     bool
	PValue  bool
	Overall bool
}

// Evaluate applies the cutoffs to the measurements. Overall significance is
// gated on FDR alone, or on FDR and p-value together in strict mode.
func Evaluate(m Measurements, c Cutoffs) Significance {
	s := Significance{
		NES:    math.Abs(m.NES) >= c.NES,
		FDR:    m.FDR <= c.FDR,
		PValue: m.PValue <= c.PValue,
	}
	s.Overall = s.FDR
	if c.Strict {
		s.Overall = s.FDR && s.PValue
	}
	return s
}
