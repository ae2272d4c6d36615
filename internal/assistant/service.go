package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Silveira-k7/PragmaL/internal/facilities"
	"github.com/Silveira-k7/PragmaL/internal/observability/metrics"
	"github.com/Silveira-k7/PragmaL/internal/reservations"
	"github.com/Silveira-k7/PragmaL/pkg/logging"
)

// Directory is the read-only slice of the facilities layer the assistant
// consults: block names for extraction and rooms for commit-time resolution.
type Directory interface {
	ListBlocks(ctx context.Context) ([]facilities.Block, error)
	ListRoomsByBlock(ctx context.Context, blockID string) ([]facilities.Room, error)
}

// Committer persists a confirmed draft as a weekly reservation series.
type Committer interface {
	CreateSemester(ctx context.Context, req reservations.SemesterRequest) (int, error)
}

// TurnResult is what one processed message hands back to the transport layer.
type TurnResult struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	State     State  `json:"state"`
	Draft     Draft  `json:"draft"`
	Committed bool   `json:"committed"`
	Created   int    `json:"created,omitempty"`
}

// Service drives the conversation: it loads the session, routes the message
// through the confirm/cancel/extract priority ladder and persists the result.
// Turns are processed one at a time per session; the transport serializes
// messages so there is never more than one in-flight turn per conversation.
type Service struct {
	extractor    *Extractor
	sessions     SessionStore
	directory    Directory
	committer    Committer
	metrics      *metrics.AssistantMetrics
	logger       *logging.Logger
	name         string
	defaultWeeks int
	now          func() time.Time
}

// Config carries the assistant's tunables.
type Config struct {
	Name         string
	DefaultWeeks int
	Now          func() time.Time
}

// NewService wires the conversation service. Metrics may be nil.
func NewService(
	extractor *Extractor,
	sessions SessionStore,
	directory Directory,
	committer Committer,
	m *metrics.AssistantMetrics,
	logger *logging.Logger,
	cfg Config,
) *Service {
	if extractor == nil {
		extractor = NewExtractor(nil, cfg.Now)
	}
	if sessions == nil {
		sessions = NewMemorySessionStore()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Name == "" {
		cfg.Name = "Luciano"
	}
	if cfg.DefaultWeeks <= 0 {
		cfg.DefaultWeeks = 16
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		extractor:    extractor,
		sessions:     sessions,
		directory:    directory,
		committer:    committer,
		metrics:      m,
		logger:       logger,
		name:         cfg.Name,
		defaultWeeks: cfg.DefaultWeeks,
		now:          cfg.Now,
	}
}

// Greeting is the opening message sent when a conversation starts.
func (s *Service) Greeting() string {
	return fmt.Sprintf("Olá! Sou o %s, assistente de agendamentos do PRAGMA. "+
		"Me diga o professor, a disciplina, o bloco, o horário e o dia da semana, "+
		"e eu cuido do resto.", s.name)
}

var (
	confirmKeywords = []string{"confirmar", "sim", "ok"}
	cancelKeywords  = []string{"cancelar", "não", "nao"}
)

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// HandleTurn processes one user message for the given session. An empty
// sessionID starts a new conversation. The session is saved before returning,
// so a crash between turns never loses more than the in-flight message.
func (s *Service) HandleTurn(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	started := s.now()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = NewSession(sessionID)
	}

	result, outcome := s.processTurn(ctx, session, message)

	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.ObserveTurn(outcome, s.now().Sub(started).Seconds())
	s.logger.Info("chat turn processed",
		"session_id", sessionID,
		"state", string(session.State),
		"outcome", outcome,
	)
	return result, nil
}

// processTurn applies the transition rules in priority order: confirm with a
// complete draft, confirm with an incomplete one, cancel, then extraction.
func (s *Service) processTurn(ctx context.Context, session *Session, message string) (*TurnResult, string) {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, confirmKeywords) && session.Draft.Complete():
		return s.commit(ctx, session)

	case containsAny(lower, confirmKeywords):
		session.State = StateCollecting
		return s.result(session, s.incompleteReply(session.Draft)), "incomplete_confirm"

	case containsAny(lower, cancelKeywords):
		session.Reset()
		reply := "Agendamento cancelado.\n\nPosso ajudar com um novo agendamento?"
		return s.result(session, reply), "cancelled"

	default:
		return s.extract(ctx, session, message)
	}
}

func (s *Service) extract(ctx context.Context, session *Session, message string) (*TurnResult, string) {
	var refs []BlockRef
	blocks, err := s.directory.ListBlocks(ctx)
	if err != nil {
		// Extraction stays best-effort: without the directory the block
		// field simply goes unresolved this turn.
		s.logger.Error("failed to list blocks for extraction", "error", err)
	} else {
		refs = make([]BlockRef, 0, len(blocks))
		for _, b := range blocks {
			refs = append(refs, BlockRef{ID: b.ID, Name: b.Name})
		}
	}

	session.Draft = s.extractor.Extract(message, session.Draft, refs)

	if session.Draft.Complete() {
		session.State = StateAwaitingConfirmation
		return s.result(session, s.summaryReply(session.Draft)), "awaiting_confirmation"
	}
	session.State = StateCollecting
	return s.result(session, s.missingReply(session.Draft)), "collecting"
}

func (s *Service) commit(ctx context.Context, session *Session) (*TurnResult, string) {
	draft := session.Draft

	rooms, err := s.directory.ListRoomsByBlock(ctx, draft.BlockID)
	if err != nil {
		s.logger.Error("failed to list rooms at commit", "error", err, "block_id", draft.BlockID)
		s.metrics.ObserveCommit("error", 0)
		reply := "Erro ao criar o agendamento. Por favor, tente novamente."
		return s.result(session, reply), "commit_failed"
	}
	if len(rooms) == 0 {
		s.metrics.ObserveCommit("no_rooms", 0)
		reply := "Não há salas disponíveis no bloco selecionado.\n\nPor favor, escolha outro bloco."
		return s.result(session, reply), "no_rooms"
	}

	room := rooms[0]
	if draft.RoomID != "" {
		for _, r := range rooms {
			if r.ID == draft.RoomID {
				room = r
				break
			}
		}
	}

	weeks := draft.WeekCount
	if weeks == 0 {
		weeks = s.defaultWeeks
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", draft.Date+" "+draft.StartTime, time.Local)
	if err != nil {
		s.logger.Error("draft has unparseable schedule", "error", err, "session_id", session.ID)
		s.metrics.ObserveCommit("error", 0)
		reply := "Erro ao criar o agendamento. Por favor, tente novamente."
		return s.result(session, reply), "commit_failed"
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", draft.Date+" "+draft.EndTime, time.Local)
	if err != nil || !end.After(start) {
		end = start.Add(50 * time.Minute)
	}

	created, err := s.committer.CreateSemester(ctx, reservations.SemesterRequest{
		RoomID:      room.ID,
		TeacherName: draft.ProfessorName,
		Purpose:     draft.Subject,
		Start:       start,
		End:         end,
		Weeks:       weeks,
	})
	if err != nil {
		s.logger.Error("commit failed", "error", err, "session_id", session.ID)
		s.metrics.ObserveCommit("failed", 0)
		reply := "Erro ao criar o agendamento. Por favor, tente novamente."
		return s.result(session, reply), "commit_failed"
	}

	s.metrics.ObserveCommit("success", created)

	reply := fmt.Sprintf("✓ Agendamento criado com sucesso\n\n"+
		"Professor: %s\n"+
		"Disciplina: %s\n"+
		"Local: %s - %s\n"+
		"Horário: %s - %s\n"+
		"Início: %s\n"+
		"Total: %d aulas agendadas",
		draft.ProfessorName, draft.Subject,
		draft.BlockName, room.Name,
		draft.StartTime, draft.EndTime,
		displayDate(draft.Date), created,
	)

	session.Reset()
	result := s.result(session, reply)
	result.Committed = true
	result.Created = created
	return result, "committed"
}

func (s *Service) summaryReply(draft Draft) string {
	weeks := draft.WeekCount
	if weeks == 0 {
		weeks = s.defaultWeeks
	}
	return fmt.Sprintf("Dados coletados com sucesso:\n\n"+
		"Professor: %s\n"+
		"Disciplina: %s\n"+
		"Bloco: %s\n"+
		"Horário: %s - %s\n"+
		"Data de início: %s (%s)\n"+
		"Semanas: %d\n\n"+
		"Digite \"confirmar\" para criar os agendamentos.",
		draft.ProfessorName, draft.Subject, draft.BlockName,
		draft.StartTime, draft.EndTime,
		displayDate(draft.Date), draft.Weekday, weeks,
	)
}

func (s *Service) missingReply(draft Draft) string {
	var b strings.Builder
	b.WriteString("Informações necessárias:\n\n")
	for _, label := range draft.MissingLabels() {
		b.WriteString("• ")
		b.WriteString(label)
		b.WriteString("\n")
	}
	b.WriteString("\nExemplo: \"Prof. João Silva vai dar Cálculo I no Bloco C, segunda-feira às 08:00, 16 semanas\"")
	return b.String()
}

func (s *Service) incompleteReply(draft Draft) string {
	var b strings.Builder
	b.WriteString("Ainda não tenho todas as informações para confirmar. Faltam:\n\n")
	for _, label := range draft.MissingLabels() {
		b.WriteString("• ")
		b.WriteString(label)
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Service) result(session *Session, reply string) *TurnResult {
	return &TurnResult{
		SessionID: session.ID,
		Reply:     reply,
		State:     session.State,
		Draft:     session.Draft,
	}
}

func displayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
