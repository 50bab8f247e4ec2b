package candidate

import (
	"fmt"
	"io"
)

// WriteSummary prints the evaluation result block.
func WriteSummary(w io.Writer, s State) error {
	_, err := fmt.Fprintf(w, "\n******* Application Summary**********\nSkills Match: %s\nExperience: %s\nOutcome: %s\n",
		s.Match, s.LevelExperience, s.Outcome)
	return err
}
