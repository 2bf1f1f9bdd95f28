package faultinject

import "fmt"

// Result aggregates the outcome of a batch of resilience trials. Each
// trial lands in exactly one pre-repair bucket (SelfCorrected or
// UndetectedWrong), and every UndetectedWrong trial additionally lands in
// RepairedByCall or StillWrong after the explicit repair.
type Result struct {
	// Trials is the number of inject/verify/repair cycles run.
	Trials int
	// SelfCorrected counts trials where the component already read back
	// correctly before any repair, i.e. voting masked the fault.
	SelfCorrected int
	// UndetectedWrong counts trials where the component read back a wrong
	// value with no failure signal; the voting contract never raises one.
	UndetectedWrong int
	// RepairedByCall counts UndetectedWrong trials fixed by the explicit
	// repair call.
	RepairedByCall int
	// StillWrong counts trials where the component read back wrong even
	// after repair.
	StillWrong int
	// FinalVerified reports whether the component verified correct after
	// the closing repair of the trial set, the isolation requirement.
	FinalVerified bool
}

// Summary renders the result in one human-readable line.
func (r Result) Summary() string {
	return fmt.Sprintf(
		"trials=%d self_corrected=%d undetected_wrong=%d repaired_by_call=%d still_wrong=%d final_ok=%t",
		r.Trials, r.SelfCorrected, r.UndetectedWrong, r.RepairedByCall, r.StillWrong, r.FinalVerified,
	)
}

// SelfCorrectionRate is the fraction of trials masked by voting alone.
func (r Result) SelfCorrectionRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.SelfCorrected) / float64(r.Trials)
}

// PostRepairCorrectness is the fraction of trials that ended correct after
// repair.
func (r Result) PostRepairCorrectness() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Trials-r.StillWrong) / float64(r.Trials)
}

// TestResilience runs trials inject/verify/repair cycles against a single
// component and aggregates the outcomes. The closures close over the
// component under test; the harness itself corrupts nothing outside it.
// Every trial ends with repair applied, and the trial set closes with a
// final repair+verify so the component is handed back consistent.
func TestResilience(inject func(), verify func() bool, repair func(), trials int) Result {
	r := Result{Trials: trials}

	for i := 0; i < trials; i++ {
		inject()

		okBefore := verify()
		if okBefore {
			r.SelfCorrected++
		} else {
			r.UndetectedWrong++
		}

		repair()
		if !verify() {
			r.StillWrong++
		} else if !okBefore {
			r.RepairedByCall++
		}
	}

	repair()
	r.FinalVerified = verify()
	return r
}
