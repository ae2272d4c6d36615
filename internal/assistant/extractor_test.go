package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Friday, so "segunda" resolves to Monday three days out.
var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)

func testBlocks() []BlockRef {
	return []BlockRef{
		{ID: "block-a", Name: "BLOCO A"},
		{ID: "block-c", Name: "BLOCO C"},
		{ID: "block-h15", Name: "BLOCO H15"},
	}
}

func newTestExtractor() *Extractor {
	return NewExtractor(nil, func() time.Time { return fixedNow })
}

func TestExtractFullSentence(t *testing.T) {
	e := newTestExtractor()

	draft := e.Extract(
		"Prof. João Silva vai dar Cálculo I no Bloco C, segunda-feira às 08:00, 16 semanas",
		Draft{}, testBlocks(),
	)

	assert.Equal(t, "Prof. João Silva", draft.ProfessorName)
	assert.Equal(t, "Cálculo I", draft.Subject)
	assert.Equal(t, "block-c", draft.BlockID)
	assert.Equal(t, "BLOCO C", draft.BlockName)
	assert.Equal(t, "08:00", draft.StartTime)
	assert.Equal(t, "08:50", draft.EndTime)
	assert.Equal(t, "2024-03-04", draft.Date)
	assert.Equal(t, "segunda", draft.Weekday)
	assert.Equal(t, 16, draft.WeekCount)
	assert.True(t, draft.Complete())
}

func TestExtractMergesAcrossMessages(t *testing.T) {
	e := newTestExtractor()

	draft := e.Extract("Ana, Física", Draft{}, testBlocks())
	assert.Equal(t, "Prof. Ana", draft.ProfessorName)
	assert.Equal(t, "Física", draft.Subject)
	assert.False(t, draft.Complete())

	draft = e.Extract("bloco H15 às 14h00 quinta", draft, testBlocks())
	assert.Equal(t, "Prof. Ana", draft.ProfessorName)
	assert.Equal(t, "Física", draft.Subject)
	assert.Equal(t, "block-h15", draft.BlockID)
	assert.Equal(t, "14:05", draft.StartTime)
	assert.Equal(t, "14:55", draft.EndTime)
	assert.Equal(t, "2024-03-07", draft.Date)
	assert.True(t, draft.Complete())
}

func TestExtractFirstMatchWins(t *testing.T) {
	e := newTestExtractor()

	draft := e.Extract("Prof. João Silva vai dar Física no bloco A às 08:00 segunda", Draft{}, testBlocks())
	first := draft

	// A later message with conflicting values must not change anything.
	draft = e.Extract("Prof. Maria ensina Química no bloco C às 16:00 sexta, 8 semanas", draft, testBlocks())
	assert.Equal(t, first.ProfessorName, draft.ProfessorName)
	assert.Equal(t, first.Subject, draft.Subject)
	assert.Equal(t, first.BlockID, draft.BlockID)
	assert.Equal(t, first.StartTime, draft.StartTime)
	assert.Equal(t, first.Date, draft.Date)
	// Week count was unset, so the second message may still fill it.
	assert.Equal(t, 8, draft.WeekCount)
}

func TestExtractIdempotent(t *testing.T) {
	e := newTestExtractor()
	msg := "Professora Maria ensina Química no bloco A, sexta às 16:00"

	once := e.Extract(msg, Draft{}, testBlocks())
	twice := e.Extract(msg, once, testBlocks())
	assert.Equal(t, once, twice)
}

func TestExtractProfessorVariants(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		message string
		want    string
	}{
		{"Prof. João Silva vai dar aula", "Prof. João Silva"},
		{"Professor Carlos Mendes, sala no bloco A", "Prof. Carlos Mendes"},
		{"Maria Souza vai dar Física", "Prof. Maria Souza"},
		{"Carla ensina Estatística", "Prof. Carla"},
		{"Ana, preciso de uma sala", "Prof. Ana"},
	}
	for _, tt := range tests {
		draft := e.Extract(tt.message, Draft{}, nil)
		assert.Equal(t, tt.want, draft.ProfessorName, "message %q", tt.message)
	}
}

func TestExtractProfessorRejectsSubjectAndWeekday(t *testing.T) {
	e := newTestExtractor()

	// The leading clause is a known subject, not a name.
	draft := e.Extract("Física, bloco A", Draft{}, testBlocks())
	assert.Empty(t, draft.ProfessorName)
	assert.Equal(t, "Física", draft.Subject)

	// A leading weekday must not be mistaken for a name either.
	draft = e.Extract("segunda, 08:00", Draft{}, testBlocks())
	assert.Empty(t, draft.ProfessorName)
	assert.Equal(t, "2024-03-04", draft.Date)
}

func TestExtractSubjectFallback(t *testing.T) {
	e := newTestExtractor()

	draft := e.Extract("aula de topografia na sala do bloco A", Draft{}, testBlocks())
	assert.Equal(t, "Topografia", draft.Subject)

	// Shorter than four characters is rejected.
	draft = e.Extract("aula de ed", Draft{}, nil)
	assert.Empty(t, draft.Subject)
}

func TestExtractBlockUnresolvedCodeLeavesFieldUnset(t *testing.T) {
	e := newTestExtractor()

	draft := e.Extract("no bloco Z, segunda às 08:00", Draft{}, testBlocks())
	assert.Empty(t, draft.BlockID)
	assert.Equal(t, "08:00", draft.StartTime)
}

func TestExtractTimeVariants(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		message   string
		wantStart string
	}{
		{"às 08:00", "08:00"},
		{"14h00", "14:05"},
		{"às 19", "19:20"},
		{"10 horas", "10:45"},
		{"3 horas da madrugada", "07:10"},
	}
	for _, tt := range tests {
		draft := e.Extract(tt.message, Draft{}, nil)
		require.NotEmpty(t, draft.StartTime, "message %q", tt.message)
		assert.Equal(t, tt.wantStart, draft.StartTime, "message %q", tt.message)
	}
}

func TestExtractWeekdayNeverToday(t *testing.T) {
	labels := []string{"segunda", "terça", "quarta", "quinta", "sexta"}

	// Every weekday label against every possible "today" must land strictly
	// in the future, one to seven days out, on the right weekday.
	base := time.Date(2024, 3, 4, 12, 0, 0, 0, time.Local)
	for today := 0; today < 7; today++ {
		now := base.AddDate(0, 0, today)
		ex := NewExtractor(nil, func() time.Time { return now })
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

		for ord, label := range labels {
			draft := ex.Extract("aula na "+label, Draft{}, nil)
			require.NotEmpty(t, draft.Date, "label %q today %v", label, now.Weekday())

			resolved, err := time.ParseInLocation("2006-01-02", draft.Date, time.Local)
			require.NoError(t, err)
			assert.Equal(t, time.Weekday(ord+1), resolved.Weekday())

			days := 0
			for d := midnight; d.Before(resolved); d = d.AddDate(0, 0, 1) {
				days++
			}
			assert.GreaterOrEqual(t, days, 1, "label %q today %v", label, now.Weekday())
			assert.LessOrEqual(t, days, 7, "label %q today %v", label, now.Weekday())
		}
	}
}

func TestExtractWeekCountSpelled(t *testing.T) {
	e := newTestExtractor()

	draft := e.Extract("durante doze semanas", Draft{}, nil)
	assert.Equal(t, 12, draft.WeekCount)

	draft = e.Extract("por 4 semanas", Draft{}, nil)
	assert.Equal(t, 4, draft.WeekCount)
}

func TestExtractUnrecognizedInputLeavesDraftEmpty(t *testing.T) {
	e := newTestExtractor()

	draft := e.Extract("bom dia!", Draft{}, testBlocks())
	assert.Equal(t, Draft{}, draft)
}
