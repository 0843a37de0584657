package live

import "qm/internal/session"

// Reduce applies a session event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventPresent:
		state.Current = event.Presentation
		state.HasQuestion = true
		state.PresentedAt = event.EmittedAt
		state.Reveal = ""
		state.InputError = ""
	case EventAnswer:
		answer := event.Answer
		state.Answers = append(append([]session.AnswerResult(nil), state.Answers...), answer)
		state.LastResult = &answer
		state.Counts = recount(state.Answers)
		state.HasQuestion = false
		state.Reveal = ""
		state.InputError = ""
	case EventReveal:
		state.Reveal = event.Reveal
	case EventInputError:
		state.InputError = event.Error
	case EventEnd:
		state.Final = event.State
		state.Done = true
		state.HasQuestion = false
	}
	return state
}

// recount rebuilds counts from recorded answers.
func recount(answers []session.AnswerResult) Counts {
	counts := Counts{Answered: len(answers)}
	for _, answer := range answers {
		switch {
		case answer.TimedOut:
			counts.TimedOut++
		case !answer.Graded():
			counts.Revealed++
		case answer.IsCorrect():
			counts.Correct++
		default:
			counts.Wrong++
		}
	}
	return counts
}
