package session

// Observer receives session lifecycle events for drivers and logging.
type Observer interface {
	// OnPresent signals a question was presented and its timer started.
	OnPresent(p Presentation)
	// OnAnswer delivers the recorded outcome for the current question.
	OnAnswer(result AnswerResult)
	// OnEnd signals the session reached Complete or Aborted.
	OnEnd(state State, answers []AnswerResult)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Present func(Presentation)
	Answer  func(AnswerResult)
	End     func(State, []AnswerResult)
}

func (o ObserverFuncs) OnPresent(p Presentation) {
	if o.Present != nil {
		o.Present(p)
	}
}

func (o ObserverFuncs) OnAnswer(result AnswerResult) {
	if o.Answer != nil {
		o.Answer(result)
	}
}

func (o ObserverFuncs) OnEnd(state State, answers []AnswerResult) {
	if o.End != nil {
		o.End(state, answers)
	}
}
