// Package session runs one quiz or flashcard pass over an ordered subset of
// questions.
package session

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"qm/internal/question"
)

// Mode selects whether answers are graded.
type Mode string

const (
	ModeQuiz      Mode = "quiz"
	ModeFlashcard Mode = "flashcard"
)

// ParseMode validates a mode name; empty means quiz.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeQuiz:
		return ModeQuiz, nil
	case ModeFlashcard:
		return ModeFlashcard, nil
	default:
		return "", fmt.Errorf("unsupported mode %q (expected quiz|flashcard)", value)
	}
}

// NoLimit disables the per-question time limit.
const NoLimit time.Duration = 0

// Options wires optional collaborators into a session.
type Options struct {
	ID       string
	Now      func() time.Time
	Rand     *rand.Rand
	Observer Observer
	Check    question.Options
}

// Session is a single pass over a question subset. It is not safe for
// concurrent use.
type Session struct {
	id        string
	subset    []question.Question
	mode      Mode
	timeLimit time.Duration

	state       State
	index       int
	answers     []AnswerResult
	startedAt   time.Time
	presentedAt time.Time
	endedAt     time.Time

	now      func() time.Time
	rng      *rand.Rand
	observer Observer
	check    question.Options
}

// Start builds a session in NotStarted. The subset order is kept as given.
func Start(subset []question.Question, mode Mode, timeLimit time.Duration, opts Options) (*Session, error) {
	if len(subset) == 0 {
		return nil, &Error{Kind: EmptyBank, State: NotStarted, Op: "start"}
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeQuiz
	}
	if timeLimit < 0 {
		return nil, fmt.Errorf("session: negative time limit %s", timeLimit)
	}
	copied := make([]question.Question, len(subset))
	for i, q := range subset {
		copied[i] = question.Clone(q)
	}
	s := &Session{
		id:        opts.ID,
		subset:    copied,
		mode:      mode,
		timeLimit: timeLimit,
		state:     NotStarted,
		index:     -1,
		now:       opts.Now,
		rng:       opts.Rand,
		observer:  opts.Observer,
		check:     opts.Check,
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.startedAt = s.now()
	return s, nil
}

// Next presents the following question, or reports completion once the
// subset is exhausted. Calls after completion keep reporting completion.
func (s *Session) Next() (Presentation, error) {
	nextIndex := s.index + 1
	if s.state == Complete || nextIndex >= len(s.subset) {
		if err := s.move(eventComplete); err != nil {
			return Presentation{}, err
		}
		return Presentation{Index: len(s.subset), Total: len(s.subset), Complete: true}, nil
	}
	if err := s.move(eventPresent); err != nil {
		return Presentation{}, err
	}
	s.index = nextIndex
	presentation := s.present(s.subset[s.index])
	s.presentedAt = s.now()
	if err := s.move(eventAwait); err != nil {
		return Presentation{}, err
	}
	if s.observer != nil {
		s.observer.OnPresent(presentation)
	}
	return presentation, nil
}

// Submit records an answer for the question awaiting one.
//
// An answer arriving after the time limit is recorded as timed out and never
// graded. A zero Response counts as no answer. When the response cannot be
// interpreted for the question kind the error is returned and the session
// keeps waiting for an answer.
func (s *Session) Submit(resp question.Response) (AnswerResult, error) {
	if s.state != AwaitingAnswer {
		_, err := transition(s.state, eventScore)
		return AnswerResult{}, err
	}
	q := s.subset[s.index]
	result := s.baseResult(q)
	result.Given = resp
	result.Answered = !isEmptyResponse(resp)

	if s.timeLimit > NoLimit && result.Elapsed > s.timeLimit {
		return s.expire(result)
	}
	if s.mode == ModeQuiz {
		correct := false
		if result.Answered {
			var err error
			correct, err = question.Check(q, resp, s.check)
			if err != nil {
				return AnswerResult{}, err
			}
		}
		result.Correct = verdict(correct)
	}
	return s.record(result, eventScore)
}

// Expire records the awaiting question as timed out with no answer. Drivers
// call it when their wall-clock timer fires.
func (s *Session) Expire() (AnswerResult, error) {
	if s.state != AwaitingAnswer {
		_, err := transition(s.state, eventTimeout)
		return AnswerResult{}, err
	}
	return s.expire(s.baseResult(s.subset[s.index]))
}

func (s *Session) expire(result AnswerResult) (AnswerResult, error) {
	result.TimedOut = true
	if s.mode == ModeQuiz {
		result.Correct = verdict(false)
	}
	return s.record(result, eventTimeout)
}

// Abort ends the session early. Answers recorded so far are kept.
func (s *Session) Abort() error {
	return s.move(eventAbort)
}

// Reveal returns the expected answer for the awaiting question. It is only
// available in flashcard mode.
func (s *Session) Reveal() (string, error) {
	if s.state != AwaitingAnswer || s.mode != ModeFlashcard {
		return "", &Error{Kind: InvalidTransition, State: s.state, Op: "reveal"}
	}
	return question.CorrectText(s.subset[s.index]), nil
}

func (s *Session) baseResult(q question.Question) AnswerResult {
	return AnswerResult{
		Index:    s.index,
		Question: question.Clone(q),
		Expected: question.CorrectText(q),
		Elapsed:  s.now().Sub(s.presentedAt),
	}
}

func (s *Session) record(result AnswerResult, ev event) (AnswerResult, error) {
	if err := s.move(ev); err != nil {
		return AnswerResult{}, err
	}
	s.answers = append(s.answers, result)
	if s.observer != nil {
		s.observer.OnAnswer(result)
	}
	return result, nil
}

// move applies ev and finalizes the session on entering a terminal state.
func (s *Session) move(ev event) error {
	from := s.state
	to, err := transition(from, ev)
	if err != nil {
		return err
	}
	s.state = to
	if to.Terminal() && !from.Terminal() {
		s.endedAt = s.now()
		if s.observer != nil {
			s.observer.OnEnd(to, s.Answers())
		}
	}
	return nil
}

func (s *Session) present(q question.Question) Presentation {
	p := Presentation{
		Index:     s.index,
		Total:     len(s.subset),
		Kind:      q.Kind(),
		Prompt:    q.Text(),
		TimeLimit: s.timeLimit,
	}
	switch typed := q.(type) {
	case question.Multiple:
		options := append([]string{typed.Correct}, typed.Wrong...)
		s.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
		p.Options = options
	case question.TrueFalse:
		options := []string{"True", "False"}
		s.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
		p.Options = options
	case question.FillIn:
	case question.Match:
		p.Left = append([]string(nil), typed.Left...)
		p.Right = append([]string(nil), typed.Right...)
	default:
		panic(fmt.Sprintf("session: unhandled question variant %T", q))
	}
	return p
}

func isEmptyResponse(resp question.Response) bool {
	return resp.Pairs == nil && strings.TrimSpace(resp.Text) == ""
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Len returns the number of questions in the subset.
func (s *Session) Len() int { return len(s.subset) }

// Index returns the position of the current question, or -1 before the first.
func (s *Session) Index() int { return s.index }

// TimeLimit returns the per-question limit, NoLimit when unset.
func (s *Session) TimeLimit() time.Duration { return s.timeLimit }

// StartedAt returns when the session was started.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns when the session reached a terminal state, or zero.
func (s *Session) EndedAt() time.Time { return s.endedAt }

// Duration returns the elapsed session time, up to now while still running.
func (s *Session) Duration() time.Duration {
	if s.endedAt.IsZero() {
		return s.now().Sub(s.startedAt)
	}
	return s.endedAt.Sub(s.startedAt)
}

// Deadline returns when the awaiting question times out. ok is false when
// there is no limit or no question is awaiting an answer.
func (s *Session) Deadline() (deadline time.Time, ok bool) {
	if s.state != AwaitingAnswer || s.timeLimit == NoLimit {
		return time.Time{}, false
	}
	return s.presentedAt.Add(s.timeLimit), true
}

// Answers returns a copy of the recorded outcomes in presentation order.
func (s *Session) Answers() []AnswerResult {
	out := make([]AnswerResult, len(s.answers))
	copy(out, s.answers)
	return out
}
