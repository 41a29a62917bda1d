package reading

// Passage is a generated reading text.
type Passage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Question is one multiple-choice item about a passage.
type Question struct {
	// Text is the question prompt.
	Text string `json:"text"`

	// Options holds exactly OptionCount choices, shown as A-D.
	Options []string `json:"options"`

	// AnswerIndex is the 0-based index of the correct option.
	AnswerIndex int `json:"answer_index"`

	// Skill is the reading skill the question exercises.
	Skill Skill `json:"skill"`

	// Explanation is shown after the quiz is submitted.
	Explanation string `json:"explanation"`
}

// Answer returns the text of the correct option.
func (q Question) Answer() string {
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.AnswerIndex]
}

// Skill names the four areas questions cover.
type Skill string

const (
	SkillComprehension    Skill = "comprehension"
	SkillVocabulary       Skill = "vocabulary"
	SkillCriticalThinking Skill = "critical-thinking"
	SkillLogic            Skill = "logic"
)

// AllSkills lists every valid Skill.
var AllSkills = []Skill{SkillComprehension, SkillVocabulary, SkillCriticalThinking, SkillLogic}

// OptionCount is the number of choices per question.
const OptionCount = 4
