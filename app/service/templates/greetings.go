package templates

import (
	"fmt"

	"synth/app/model"
)

// Greeting builds the opening assistant turn for a new project. It is fully
// deterministic: same mode, name and description always produce the same
// text, so new-project behavior stays predictable and testable.
func Greeting(mode model.Mode, name, description string) string {
	switch mode {
	case model.ModePlanner:
		return plannerGreeting(name, description)
	case model.ModeEditor:
		return editorGreeting(name, description)
	case model.ModeChallenger:
		return challengerGreeting(name, description)
	default:
		return brainstormerGreeting(name, description)
	}
}

func brainstormerGreeting(name, description string) string {
	base := fmt.Sprintf("Hey! I'm excited to brainstorm on **%s** with you.", name)
	if description == "" {
		return base + "\n\nI'm here to help you explore ideas freely. What's on your mind? " +
			"Share any rough thoughts, and I'll help shape them into something actionable."
	}

	return base + fmt.Sprintf("\n\nBased on what you've shared: %q\n\n", description) +
		"Here are some initial directions we could explore:\n\n" +
		"1. **Core concept** - What's the one thing that makes this unique?\n" +
		"2. **Target audience** - Who needs this most urgently?\n" +
		"3. **First milestone** - What's the smallest version we could validate?\n\n" +
		"What aspect feels most important to dig into first?"
}

func plannerGreeting(name, description string) string {
	base := fmt.Sprintf("Let's build a solid plan for **%s**.", name)
	if description == "" {
		return base + "\n\nI'll help you structure your thinking into clear milestones and actionable tasks. " +
			"What are you trying to accomplish?"
	}

	return base + fmt.Sprintf("\n\nStarting from your goal: %q\n\n", description) +
		"I'll help you break this down into clear, actionable steps. First, let's establish:\n\n" +
		"- **What success looks like** - How will you know when you're done?\n" +
		"- **Key milestones** - What are the major checkpoints?\n" +
		"- **Immediate next action** - What can you do in the next 30 minutes?\n\n" +
		"Shall we start by defining the end goal more precisely?"
}

func editorGreeting(name, description string) string {
	base := fmt.Sprintf("Ready to refine and polish **%s**.", name)
	if description == "" {
		return base + "\n\nI'm here to help you refine, clarify, and strengthen your work. " +
			"Share what you've got, and I'll offer specific suggestions."
	}

	return base + fmt.Sprintf("\n\nLooking at: %q\n\n", description) +
		"I'll help you:\n" +
		"- Sharpen the language and clarity\n" +
		"- Identify gaps or inconsistencies\n" +
		"- Strengthen the overall structure\n\n" +
		"Paste in what you're working on, and I'll provide specific feedback."
}

func challengerGreeting(name, description string) string {
	base := fmt.Sprintf("Let's stress-test **%s**.", name)
	if description == "" {
		return base + "\n\nI'm here to challenge your thinking and find the weak spots before they become problems. " +
			"Don't worry - tough questions lead to better outcomes. What's the idea?"
	}

	return base + fmt.Sprintf("\n\nYou mentioned: %q\n\n", description) +
		"My job is to ask the hard questions:\n\n" +
		"- What's the biggest assumption you're making?\n" +
		"- What would make this fail?\n" +
		"- Why hasn't someone else already done this?\n\n" +
		"I'll push back to help you build something stronger. Ready?"
}
