package domain

// Synchrolift is the single shared ship-transfer elevator that mediates
// between AFLOAT and ASHORE periods. Its daily-use cap lives in Config
// (MaxSynchroliftUsesPerDay) since the job JSON carries only the envelope
// dimensions; the cap comes from the defaults/override parameter file.
type Synchrolift struct {
	MaxLength float64
	MaxWidth  float64
}

// Envelope reports whether a vessel of the given dimensions can use the
// synchrolift at all.
func (s Synchrolift) Envelope(eslora, manga float64) bool {
	return eslora <= s.MaxLength && manga <= s.MaxWidth
}
