package candidate

import (
	"fmt"
	"strings"
)

// Mermaid renders the workflow as a Mermaid flowchart.
func Mermaid() string {
	var b strings.Builder

	b.WriteString("flowchart TD\n")
	fmt.Fprintf(&b, "    start([Start]) --> %s\n", StepCategorizeExperience)
	fmt.Fprintf(&b, "    %s --> %s\n", StepCategorizeExperience, StepEvaluateSkills)

	for _, edge := range []struct {
		route Route
		step  string
	}{
		{ToInterview, StepMarkEligible},
		{ToRecruiter, StepRouteToRecruiter},
		{Rejected, StepRejectCandidate},
	} {
		fmt.Fprintf(&b, "    %s -. %s .-> %s\n", StepEvaluateSkills, edge.route, edge.step)
	}

	// "end" is a reserved word in Mermaid.
	for _, step := range []string{StepMarkEligible, StepRouteToRecruiter, StepRejectCandidate} {
		fmt.Fprintf(&b, "    %s --> finish([End])\n", step)
	}

	return b.String()
}
