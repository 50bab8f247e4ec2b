// Package candidate evaluates a job candidate through a fixed model-driven workflow.
package candidate

import (
	"errors"
	"fmt"
)

// ErrFieldAlreadySet is returned when an update would overwrite a written field.
var ErrFieldAlreadySet = errors.New("state field already set")

// State is the record carried through one evaluation.
type State struct {
	CandidateDetails string `json:"candidate_details"`
	LevelExperience  string `json:"level_experience"`
	Match            string `json:"match"`
	Outcome          string `json:"outcome"`
	// Resume is declared for parity with the record callers exchange. No step reads or writes it.
	Resume string `json:"resume,omitempty"`
}

// Update is the partial result of a step. Nil fields are left untouched.
type Update struct {
	LevelExperience *string
	Match           *string
	Outcome         *string
}

// Apply merges u into s. Every field may be written once.
func (s *State) Apply(u Update) error {
	if err := setOnce("level_experience", &s.LevelExperience, u.LevelExperience); err != nil {
		return err
	}
	if err := setOnce("match", &s.Match, u.Match); err != nil {
		return err
	}
	return setOnce("outcome", &s.Outcome, u.Outcome)
}

func setOnce(name string, dst *string, v *string) error {
	if v == nil {
		return nil
	}
	if *dst != "" {
		return fmt.Errorf("%w: %s", ErrFieldAlreadySet, name)
	}
	*dst = *v
	return nil
}
