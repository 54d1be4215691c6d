// Package templates holds the static response material per mode: greeting
// builders, fallback skeletons with {placeholder} slots, follow-up pools and
// the provider system prompts. Everything here is data; selection and slot
// filling live in the fallback generator.
package templates

import "synth/app/model"

var skeletons = map[model.Mode][]string{
	model.ModeBrainstormer: {
		"That's an interesting angle! What if we pushed it further - {idea}?",
		"I like where this is going. Here are three variations to consider:\n\n1. {variation1}\n2. {variation2}\n3. {variation3}\n\nWhich resonates most?",
		"Building on that thought... What if we combined {element1} with {element2}? That could create something really distinctive.",
		"Great instinct. Let me riff on this:\n\n**The bold version:** Go all-in on {bold}\n**The safe version:** Start with {safe}\n**The wild card:** What about {wildcard}?\n\nI'm curious which direction excites you.",
	},
	model.ModePlanner: {
		"Good. Let me organize that into a roadmap:\n\n**Phase 1:** {phase1}\n**Phase 2:** {phase2}\n**Phase 3:** {phase3}\n\nShall I break any of these into smaller tasks?",
		"Here's a suggested priority order:\n\n1. {priority1} (Do first - unlocks everything else)\n2. {priority2} (Important but can wait)\n3. {priority3} (Nice to have)\n\nDoes this sequencing make sense?",
		"I've identified some dependencies:\n\n- {task1} needs to happen before {task2}\n- {task3} can run in parallel\n\nWant me to create tasks for these?",
		"Let me add structure to that:\n\n**Must have:** {must}\n**Should have:** {should}\n**Could have:** {could}\n\nThis helps ensure we focus on what matters most.",
	},
	model.ModeEditor: {
		"Here's a tighter version:\n\n> {improved}\n\nKey changes: {changes}",
		"The core idea is strong. Consider:\n\n- **Opening:** {opening}\n- **Structure:** {structure}\n- **Closing:** {closing}",
		"A few suggestions:\n\n1. {suggestion1}\n2. {suggestion2}\n3. {suggestion3}\n\nThe overall direction is good - these are refinements, not rewrites.",
		"This section could be sharper:\n\n**Before:** {before}\n**After:** {after}\n\nThe rest reads well. Ready to move forward?",
	},
	model.ModeChallenger: {
		"Devil's advocate time: What if {challenge}?\n\nNot saying it's wrong - but how would you respond to a skeptic?",
		"Let's pressure test this:\n\n- **Best case:** {best}\n- **Worst case:** {worst}\n- **Most likely:** {likely}\n\nAre you prepared for all three?",
		"Honest question: {question}\n\nI ask because {reason}. What's your thinking?",
		"I see the potential, but consider:\n\n1. {objection1}\n2. {objection2}\n\nHow do you address these? Having clear answers will make this stronger.",
	},
}

var followUps = map[model.Mode][]string{
	model.ModeBrainstormer: {
		"Want me to turn this into tasks?",
		"Should we explore a different angle?",
		"Ready to challenge this idea?",
		"Want to save the key points as a note?",
	},
	model.ModePlanner: {
		"Should I create these as tasks?",
		"Want a concrete next step?",
		"Ready to commit to this plan?",
		"Need me to break this down further?",
	},
	model.ModeEditor: {
		"Want me to refine this more?",
		"Should we save this version?",
		"Ready for a final polish?",
		"Want to challenge these edits?",
	},
	model.ModeChallenger: {
		"Did that uncover anything useful?",
		"Want to brainstorm solutions?",
		"Should we document these risks?",
		"Ready to move forward despite concerns?",
	},
}

// Daily-focus skeletons are terse planner replies. They carry their own
// closing imperative line, so no follow-up is ever appended to them.
var focusSkeletons = []string{
	"**Focus for today:**\n\n- Define {focus_topic} scope\n- Identify blockers\n- Ship one thing\n\n**Do this now:** Start with the smallest piece.",
	"**3 priorities:**\n\n- {focus_first} first\n- Then {focus_second} items\n- Everything else waits\n\n**Do this now:** Block 30 min for priority #1.",
	"**Today's target:**\n\n- Complete {focus_topic}\n- Document progress\n- Clear one blocker\n\n**Do this now:** Write down what \"done\" looks like.",
}

var descriptions = map[model.Mode]string{
	model.ModeBrainstormer: "Let's explore ideas freely and build on each other's thoughts.",
	model.ModePlanner:      "I'll help you structure your thinking into actionable steps.",
	model.ModeEditor:       "I'll help you refine and polish your work with specific feedback.",
	model.ModeChallenger:   "I'll ask tough questions to strengthen your thinking.",
}

// Skeletons returns the fallback reply skeletons for a mode. Unknown modes
// fall through to the brainstormer set so the generator can never come up
// empty-handed.
func Skeletons(mode model.Mode) []string {
	if set, ok := skeletons[mode]; ok {
		return set
	}

	return skeletons[model.ModeBrainstormer]
}

func FollowUps(mode model.Mode) []string {
	if set, ok := followUps[mode]; ok {
		return set
	}

	return followUps[model.ModeBrainstormer]
}

func FocusSkeletons() []string {
	return focusSkeletons
}

func Description(mode model.Mode) string {
	return descriptions[mode]
}
