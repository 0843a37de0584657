package bank

import (
	"math/rand"

	"qm/internal/question"
)

// Filter narrows the questions drawn from one or more banks.
type Filter struct {
	Kinds []question.Kind
	Limit int
}

func (filter Filter) allows(kind question.Kind) bool {
	if len(filter.Kinds) == 0 {
		return true
	}
	for _, allowed := range filter.Kinds {
		if allowed == kind {
			return true
		}
	}
	return false
}

// Select concatenates questions from banks in order, keeping only the kinds
// the filter allows and stopping at Limit when it is positive.
func Select(banks []*Bank, filter Filter) []question.Question {
	var selected []question.Question
	for _, b := range banks {
		if b == nil {
			continue
		}
		for _, q := range b.questions {
			if !filter.allows(q.Kind()) {
				continue
			}
			selected = append(selected, question.Clone(q))
			if filter.Limit > 0 && len(selected) == filter.Limit {
				return selected
			}
		}
	}
	return selected
}

// Shuffle returns a shuffled copy of questions. The input is left untouched.
func Shuffle(questions []question.Question, rng *rand.Rand) []question.Question {
	out := make([]question.Question, len(questions))
	copy(out, questions)
	if rng == nil {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
