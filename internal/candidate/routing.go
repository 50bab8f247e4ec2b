package candidate

import "strings"

// Route selects the terminal step that follows skills evaluation.
type Route string

const (
	ToInterview Route = "To Interview"
	ToRecruiter Route = "To Recruiter"
	Rejected    Route = "Rejected"
)

// NextRoute applies case-insensitive substring checks to the raw model answers.
// "yes" is checked before "no", so an answer containing both goes to interview.
func NextRoute(s State) Route {
	match := strings.ToLower(s.Match)
	senior := strings.Contains(strings.ToLower(s.LevelExperience), "senior")

	switch {
	case senior && strings.Contains(match, "yes"):
		return ToInterview
	case senior && strings.Contains(match, "no"):
		return ToRecruiter
	default:
		return Rejected
	}
}

// Level is the experience label normalized to a closed set.
type Level string

const (
	LevelEntry   Level = "entry"
	LevelMid     Level = "mid"
	LevelSenior  Level = "senior"
	LevelUnknown Level = "unknown"
)

// Verdict is the skills answer normalized to a closed set.
type Verdict string

const (
	VerdictYes     Verdict = "yes"
	VerdictNo      Verdict = "no"
	VerdictUnknown Verdict = "unknown"
)

// NormalizeLevel maps free text onto a Level. Only a single recognized label counts.
func NormalizeLevel(raw string) Level {
	word := strings.ToLower(strings.Trim(strings.TrimSpace(raw), ".!,;:\"'`*"))
	switch word {
	case "entry", "entry level", "junior":
		return LevelEntry
	case "mid", "mid level", "intermediate":
		return LevelMid
	case "senior":
		return LevelSenior
	default:
		return LevelUnknown
	}
}

// NormalizeVerdict maps free text onto a Verdict. Anything but a bare yes or no is unknown.
func NormalizeVerdict(raw string) Verdict {
	word := strings.ToLower(strings.Trim(strings.TrimSpace(raw), ".!,;:\"'`*"))
	switch word {
	case "yes":
		return VerdictYes
	case "no":
		return VerdictNo
	default:
		return VerdictUnknown
	}
}
