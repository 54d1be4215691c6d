package fallback

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{([a-z0-9_]+)\}`)

// slots carries everything a filler may derive a substitution from.
type slots struct {
	text  string
	words []string
}

// topic joins the first one to three topic words; generic filler when the
// message had no qualifying words.
func (s slots) topic() string {
	words := s.words
	if len(words) > 3 {
		words = words[:3]
	}
	if len(words) == 0 {
		return "this concept"
	}

	return strings.Join(words, " ")
}

func (s slots) focusTopic() string {
	words := s.words
	if len(words) > 2 {
		words = words[:2]
	}
	if len(words) == 0 {
		return "this"
	}

	return strings.Join(words, " ")
}

func (s slots) word(i int, def string) string {
	if i < len(s.words) {
		return s.words[i]
	}

	return def
}

// fillers is the total placeholder mapping: every placeholder appearing in
// any skeleton has an entry here, so filling is a single pass with no
// ordering dependencies between substitutions.
var fillers = map[string]func(slots) string{
	// brainstormer
	"idea":       func(s slots) string { return "exploring how " + s.topic() + " could evolve" },
	"variation1": func(s slots) string { return "A minimal version focused on " + s.word(0, "core") + " users" },
	"variation2": func(s slots) string { return "An expanded scope including " + s.word(1, "additional") + " features" },
	"variation3": func(s slots) string { return "A pivot toward " + s.word(2, "adjacent") + " markets" },
	"element1":   func(s slots) string { return s.word(0, "simplicity") },
	"element2":   func(s slots) string { return s.word(1, "innovation") },
	"bold":       constant("the ambitious vision"),
	"safe":       constant("proven fundamentals"),
	"wildcard":   constant("a completely different approach"),

	// planner
	"phase1":    func(s slots) string { return "Research and validate " + s.topic() },
	"phase2":    constant("Build and test core features"),
	"phase3":    constant("Launch and iterate"),
	"priority1": constant("Define the core value proposition"),
	"priority2": constant("Identify your first 10 users"),
	"priority3": constant("Polish the experience"),
	"task1":     constant("defining scope"),
	"task2":     constant("building features"),
	"task3":     constant("user research"),
	"must":      constant("The essential feature set"),
	"should":    constant("Improvements that add value"),
	"could":     constant("Nice-to-haves for later"),

	// editor
	"improved":    func(s slots) string { return truncate(s.text, 50) + "..." },
	"changes":     constant("tightened language, clearer structure"),
	"opening":     constant("Lead with the key insight"),
	"structure":   constant("Group related ideas together"),
	"closing":     constant("End with a clear call to action"),
	"suggestion1": constant("Consider starting with your strongest point"),
	"suggestion2": constant("The middle section could be more concise"),
	"suggestion3": constant("Add a specific example to ground the abstract"),
	"before":      constant("The original phrasing"),
	"after":       constant("A clearer alternative"),

	// challenger
	"challenge":  func(s slots) string { return s.topic() + " doesn't actually solve the problem" },
	"best":       constant("Everything clicks and you 10x your target"),
	"worst":      constant("The market shifts and you need to pivot"),
	"likely":     constant("Moderate success with room to grow"),
	"question":   func(s slots) string { return "Who else has tried " + s.topic() + " and why did they fail?" },
	"reason":     constant("understanding past attempts helps us avoid their mistakes"),
	"objection1": constant("The market might be smaller than expected"),
	"objection2": constant("Execution complexity could be higher"),

	// daily focus
	"focus_topic":  func(s slots) string { return s.focusTopic() },
	"focus_first":  func(s slots) string { return s.word(0, "Core") },
	"focus_second": func(s slots) string { return s.word(1, "secondary") },
}

// fill substitutes every placeholder in one traversal. Unknown names resolve
// to the topic, so raw placeholder syntax can never leak into output.
func fill(skeleton string, s slots) string {
	return placeholderRe.ReplaceAllStringFunc(skeleton, func(m string) string {
		name := m[1 : len(m)-1]
		if f, ok := fillers[name]; ok {
			return f(s)
		}

		return s.topic()
	})
}

func constant(v string) func(slots) string {
	return func(slots) string { return v }
}

func splitWords(text string) []string {
	return strings.Fields(text)
}

func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n])
}
