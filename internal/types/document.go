package types

// Document flags attached by synthesis and healing. Non-fatal: a flagged
// document is still delivered, the flags render as warnings.
const (
	FlagFactsUnverified = "facts_unverified"
	FlagCoverageUnmet   = "coverage_unmet"
)

// DocumentBullet is one synthesized experience bullet, linked back to the
// source experience it was derived from.
type DocumentBullet struct {
	ExperienceID string `json:"experience_id"`
	Text         string `json:"text"`
}

// GeneratedDocument is a synthesized, job-tailored narrative. Owned by the
// pipeline run that created it until handed to rendering.
type GeneratedDocument struct {
	HeadlineID string           `json:"headline_id"`
	Headline   string           `json:"headline"`
	Summary    string           `json:"summary"`
	Bullets    []DocumentBullet `json:"bullets"`

	ATSCoverage       float64  `json:"ats_coverage"`
	HealingIterations int      `json:"healing_iterations"`
	Flags             []string `json:"flags,omitempty"`
}

// HasFlag reports whether the document carries the given flag.
func (d *GeneratedDocument) HasFlag(flag string) bool {
	for _, f := range d.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// AddFlag attaches a flag if not already present.
func (d *GeneratedDocument) AddFlag(flag string) {
	if !d.HasFlag(flag) {
		d.Flags = append(d.Flags, flag)
	}
}

// Text returns the concatenation of headline, summary and bullet text, the
// surface the ATS coverage check runs against.
func (d *GeneratedDocument) Text() string {
	text := d.Headline + "\n" + d.Summary
	for _, b := range d.Bullets {
		text += "\n" + b.Text
	}
	return text
}

// Clone returns a deep copy. The healing loop snapshots documents so a
// regressing rewrite can be reverted.
func (d *GeneratedDocument) Clone() *GeneratedDocument {
	clone := *d
	clone.Bullets = make([]DocumentBullet, len(d.Bullets))
	copy(clone.Bullets, d.Bullets)
	clone.Flags = append([]string(nil), d.Flags...)
	return &clone
}
