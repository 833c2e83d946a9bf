package types

// StrategicPlan is the pre-tailoring analysis generated for a posting. It
// awaits explicit human approval before document generation unlocks.
type StrategicPlan struct {
	GhostNotes            []string `json:"ghost_notes"`
	VulnerabilityReport   []string `json:"vulnerability_report"`
	AntiOverqualification bool     `json:"anti_overqualification_applied"`
	NarrativeShift        string   `json:"suggested_narrative_shift"`
	Approved              bool     `json:"approved"`
}
