package assistant

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Silveira-k7/PragmaL/internal/timetable"
)

// BlockRef is the slice of the block directory the extractor needs to resolve
// a block mention to an id.
type BlockRef struct {
	ID   string
	Name string
}

// Extractor turns one free-text message into newly-resolved draft fields.
// It is pure: inputs are never mutated and the same message plus the same
// draft always produces the same result. The clock is injected so weekday
// resolution is deterministic under test.
type Extractor struct {
	dict *timetable.Dictionary
	now  func() time.Time
}

// NewExtractor builds an extractor over the given dictionary. A nil dictionary
// falls back to the institutional default, a nil clock to time.Now.
func NewExtractor(dict *timetable.Dictionary, now func() time.Time) *Extractor {
	if dict == nil {
		dict = timetable.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Extractor{dict: dict, now: now}
}

var (
	professorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bprof(?:essora?)?\.?\s+([\p{L}][\p{L}\s]*)`),
		regexp.MustCompile(`(?i)^\s*([\p{L}][\p{L}\s]*?)\s+(?:vai\s+dar|dar[áa]\b|ensina\b)`),
		regexp.MustCompile(`^\s*([\p{L}][\p{L}\s]*?)\s*,`),
	}

	subjectFallbackPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:vai\s+dar|dar[áa]|ensina)\s+([\p{L}][\p{L}\s]*)`),
		regexp.MustCompile(`(?i)\b(?:de|da|do)\s+([\p{L}][\p{L}\s]*)`),
		regexp.MustCompile(`(?i)([\p{L}]+)\s+(?:no\s+bloco|na\s+sala)\b`),
	}

	blockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bbloco\s*([a-z]\d*)\b`),
		regexp.MustCompile(`\b([A-Za-z]\d+)\b`),
		regexp.MustCompile(`(?i)^\s*([a-z])\b`),
	}

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`),
		regexp.MustCompile(`(?i)\b(\d{1,2})h(?:\d{2})?\b`),
		regexp.MustCompile(`(?i)às\s*(\d{1,2})\b`),
		regexp.MustCompile(`(?i)\b(\d{1,2})\s*horas?\b`),
	}

	weekDigitsPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*semanas?\b`)
	weekWordPattern   = regexp.MustCompile(`(?i)\b([\p{L}]+)\s+semanas?\b`)
)

// nameStopWords terminate a captured name run: everything from the first stop
// word on belongs to the rest of the sentence, not to the name.
var nameStopWords = map[string]struct{}{
	"vai": {}, "dará": {}, "dara": {}, "dar": {}, "ensina": {},
	"de": {}, "no": {}, "na": {}, "em": {}, "às": {}, "as": {}, "para": {},
}

// Extract merges newly-resolved fields from message into draft and returns the
// result. Fields already set in draft are left untouched, so the first message
// to resolve a field wins. Extraction is best-effort: a field no pattern
// matches simply stays unset.
func (e *Extractor) Extract(message string, draft Draft, blocks []BlockRef) Draft {
	lower := strings.ToLower(message)

	if draft.ProfessorName == "" {
		if name, ok := e.extractProfessor(message); ok {
			draft.ProfessorName = name
		}
	}
	if draft.Subject == "" {
		if subject, ok := e.extractSubject(message, lower); ok {
			draft.Subject = subject
		}
	}
	if draft.BlockID == "" {
		if block, ok := e.extractBlock(message, blocks); ok {
			draft.BlockID = block.ID
			draft.BlockName = block.Name
		}
	}
	if draft.StartTime == "" {
		if slot, ok := e.extractSlot(message); ok {
			draft.StartTime = slot.Start
			draft.EndTime = slot.End
		}
	}
	if draft.Date == "" {
		if date, label, ok := e.extractDate(lower); ok {
			draft.Date = date
			draft.Weekday = label
		}
	}
	if draft.WeekCount == 0 {
		if n, ok := e.extractWeekCount(lower); ok {
			draft.WeekCount = n
		}
	}
	return draft
}

func (e *Extractor) extractProfessor(message string) (string, bool) {
	for _, pattern := range professorPatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		name := strings.TrimRight(strings.TrimSpace(cutAtStopWord(m[1])), ".,!? ")
		if utf8.RuneCountInString(name) <= 2 {
			continue
		}
		if e.isKnownSubject(name) || e.isWeekdayLabel(name) {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(name), "prof") {
			name = "Prof. " + name
		}
		return name, true
	}
	return "", false
}

func (e *Extractor) extractSubject(message, lower string) (string, bool) {
	if subject, ok := e.dict.MatchSubject(lower); ok {
		return subject, true
	}
	for _, pattern := range subjectFallbackPatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(cutAtStopWord(m[1]))
		candidateLower := strings.ToLower(candidate)
		if utf8.RuneCountInString(candidate) < 4 {
			continue
		}
		if strings.Contains(candidateLower, "bloco") || strings.Contains(candidateLower, "sala") {
			continue
		}
		return capitalizeFirst(candidate), true
	}
	return "", false
}

func (e *Extractor) extractBlock(message string, blocks []BlockRef) (BlockRef, bool) {
	for _, pattern := range blockPatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		if block, ok := resolveBlock(m[1], blocks); ok {
			return block, true
		}
	}
	return BlockRef{}, false
}

// resolveBlock matches a captured code like "C" or "H15" against the block
// directory. Exact name or "BLOCO <code>" wins over looser containment; the
// loose pass requires the code at a word end so that the letters of the word
// "BLOCO" itself never count as a hit.
func resolveBlock(code string, blocks []BlockRef) (BlockRef, bool) {
	needle := strings.ToUpper(strings.TrimSpace(code))
	if needle == "" {
		return BlockRef{}, false
	}
	for _, b := range blocks {
		name := strings.ToUpper(strings.TrimSpace(b.Name))
		if name == needle || name == "BLOCO "+needle {
			return b, true
		}
	}
	for _, b := range blocks {
		name := strings.ToUpper(b.Name)
		if strings.Contains(name, "BLOCO "+needle) || strings.HasSuffix(name, " "+needle) {
			return b, true
		}
	}
	return BlockRef{}, false
}

func (e *Extractor) extractSlot(message string) (timetable.Slot, bool) {
	for _, pattern := range timePatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour > 23 {
			continue
		}
		return e.dict.NearestSlot(hour), true
	}
	return timetable.Slot{}, false
}

// extractDate resolves a weekday mention to the next future date with that
// weekday. Today never qualifies: naming today's weekday books next week.
func (e *Extractor) extractDate(lower string) (date, label string, ok bool) {
	label, ordinal, ok := e.dict.MatchWeekday(lower)
	if !ok {
		return "", "", false
	}
	now := e.now()
	daysAhead := (ordinal - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return now.AddDate(0, 0, daysAhead).Format("2006-01-02"), label, true
}

func (e *Extractor) extractWeekCount(lower string) (int, bool) {
	if m := weekDigitsPattern.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 1 {
			return n, true
		}
	}
	if m := weekWordPattern.FindStringSubmatch(lower); m != nil {
		if n, ok := e.dict.WeekCountWord(m[1]); ok {
			return n, true
		}
	}
	return 0, false
}

func (e *Extractor) isKnownSubject(candidate string) bool {
	for _, subject := range e.dict.KnownSubjects {
		if strings.EqualFold(subject, candidate) {
			return true
		}
	}
	return false
}

func (e *Extractor) isWeekdayLabel(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, syn := range e.dict.WeekdaySynonyms {
		if syn.Label == lower {
			return true
		}
	}
	return false
}

func cutAtStopWord(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if _, stop := nameStopWords[strings.ToLower(w)]; stop {
			words = words[:i]
			break
		}
	}
	return strings.Join(words, " ")
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
