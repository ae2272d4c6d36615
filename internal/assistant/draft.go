// Package assistant implements the conversational scheduling assistant: a
// rule-based extractor that fills a reservation draft from free text, and the
// turn-taking state machine that collects fields, asks for confirmation and
// commits the semester series.
package assistant

// Draft is the partially-filled reservation being assembled over a
// conversation. Fields are only ever filled, never overwritten; the first
// message to resolve a field wins for the rest of the conversation.
type Draft struct {
	ProfessorName string `json:"professor_name,omitempty"`
	Subject       string `json:"subject,omitempty"`
	BlockID       string `json:"block_id,omitempty"`
	BlockName     string `json:"block_name,omitempty"`
	RoomID        string `json:"room_id,omitempty"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	Date          string `json:"date,omitempty"`
	Weekday       string `json:"weekday,omitempty"`
	WeekCount     int    `json:"week_count,omitempty"`
}

// Complete reports whether every required field has been extracted. Room and
// week count are resolved at commit time and never gate completeness.
func (d Draft) Complete() bool {
	return d.ProfessorName != "" &&
		d.Subject != "" &&
		d.BlockID != "" &&
		d.StartTime != "" &&
		d.Date != ""
}

// MissingLabels returns the user-facing labels of the still-unset required
// fields, in a fixed display order.
func (d Draft) MissingLabels() []string {
	var missing []string
	if d.ProfessorName == "" {
		missing = append(missing, "Nome do professor")
	}
	if d.Subject == "" {
		missing = append(missing, "Disciplina")
	}
	if d.BlockID == "" {
		missing = append(missing, "Bloco")
	}
	if d.StartTime == "" {
		missing = append(missing, "Horário (ex: 08:00, 14:00)")
	}
	if d.Date == "" {
		missing = append(missing, "Dia da semana")
	}
	return missing
}
