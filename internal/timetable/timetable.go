// Package timetable holds the institution's static scheduling reference data:
// the fixed class slots, weekday spellings, known subject vocabulary and
// spelled-out week counts used by the scheduling assistant.
package timetable

import (
	"strconv"
	"strings"
)

// Slot is a fixed (start, end) time-of-day pair from the institutional timetable.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeekdaySynonym maps one text variant to a weekday ordinal (1=Monday..5=Friday).
// Variants are matched in declaration order, so shorter/common spellings come first.
type WeekdaySynonym struct {
	Label   string
	Ordinal int
}

// Dictionary is the read-only lookup data consulted by the extractor.
type Dictionary struct {
	TimeSlots       []Slot
	WeekdaySynonyms []WeekdaySynonym
	KnownSubjects   []string
	WeekCountWords  map[string]int
}

// Default returns the PRAGMA institutional dictionary.
func Default() *Dictionary {
	return &Dictionary{
		TimeSlots: []Slot{
			{Start: "07:10", End: "08:00"},
			{Start: "08:00", End: "08:50"},
			{Start: "08:50", End: "09:40"},
			{Start: "09:55", End: "10:45"},
			{Start: "10:45", End: "11:35"},
			{Start: "11:35", End: "12:25"},
			{Start: "13:15", End: "14:05"},
			{Start: "14:05", End: "14:55"},
			{Start: "15:10", End: "16:00"},
			{Start: "16:00", End: "16:50"},
			{Start: "16:50", End: "17:40"},
			{Start: "18:30", End: "19:20"},
			{Start: "19:20", End: "20:05"},
			{Start: "20:05", End: "20:50"},
			{Start: "21:05", End: "21:50"},
		},
		WeekdaySynonyms: []WeekdaySynonym{
			{"segunda", 1}, {"segunda-feira", 1}, {"seg", 1},
			{"terça", 2}, {"terça-feira", 2}, {"ter", 2}, {"terca", 2},
			{"quarta", 3}, {"quarta-feira", 3}, {"qua", 3},
			{"quinta", 4}, {"quinta-feira", 4}, {"qui", 4},
			{"sexta", 5}, {"sexta-feira", 5}, {"sex", 5},
		},
		KnownSubjects: []string{
			"Cálculo II", "Cálculo I", "Cálculo", "Álgebra", "Física", "Química",
			"Programação", "Estruturas de Dados", "Banco de Dados",
			"Engenharia de Software", "Redes", "Inteligência Artificial",
			"Sistemas Operacionais", "Estatística", "Metodologia", "Gestão",
			"Marketing", "Contabilidade", "Administração", "Direito", "Psicologia",
			"Logística", "Matemática", "Português", "Inglês", "História",
			"Geografia", "Biologia",
		},
		WeekCountWords: map[string]int{
			"uma": 1, "um": 1,
			"duas": 2, "dois": 2,
			"três": 3, "tres": 3,
			"quatro": 4, "cinco": 5, "seis": 6, "sete": 7, "oito": 8, "nove": 9,
			"dez": 10, "onze": 11, "doze": 12, "treze": 13,
			"catorze": 14, "quatorze": 14, "quinze": 15,
			"dezesseis": 16, "dezessete": 17, "dezoito": 18, "dezenove": 19,
			"vinte": 20,
		},
	}
}

// NearestSlot resolves a parsed hour to the slot whose start hour is closest,
// considering only slots at most one hour away. Ties go to the earlier slot.
// If no slot qualifies, the first slot is returned.
func (d *Dictionary) NearestSlot(hour int) Slot {
	best := -1
	bestDiff := 0
	for i, slot := range d.TimeSlots {
		diff := slotStartHour(slot) - hour
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			continue
		}
		if best == -1 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	if best == -1 {
		return d.TimeSlots[0]
	}
	return d.TimeSlots[best]
}

// MatchWeekday scans the synonym list for a literal substring of the
// lower-cased message. The first hit wins.
func (d *Dictionary) MatchWeekday(lowerMessage string) (label string, ordinal int, ok bool) {
	for _, syn := range d.WeekdaySynonyms {
		if strings.Contains(lowerMessage, syn.Label) {
			return syn.Label, syn.Ordinal, true
		}
	}
	return "", 0, false
}

// MatchSubject scans the known-subject vocabulary, lower-cased, for a literal
// substring of the lower-cased message. Declaration order is the tie-break and
// the canonical casing is returned.
func (d *Dictionary) MatchSubject(lowerMessage string) (string, bool) {
	for _, subject := range d.KnownSubjects {
		if strings.Contains(lowerMessage, strings.ToLower(subject)) {
			return subject, true
		}
	}
	return "", false
}

// WeekCountWord resolves a spelled-out number word to its integer value.
func (d *Dictionary) WeekCountWord(word string) (int, bool) {
	n, ok := d.WeekCountWords[strings.ToLower(strings.TrimSpace(word))]
	return n, ok
}

func slotStartHour(slot Slot) int {
	parts := strings.SplitN(slot.Start, ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	return h
}
