package templates

import (
	"strings"
	"testing"

	"synth/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetingDeterministic(t *testing.T) {
	for _, mode := range model.Modes() {
		first := Greeting(mode, "Side Project", "a small CLI tool")
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Greeting(mode, "Side Project", "a small CLI tool"))
		}
	}
}

func TestGreetingMentionsProjectName(t *testing.T) {
	for _, mode := range model.Modes() {
		text := Greeting(mode, "Widget Factory", "")
		assert.Contains(t, text, "**Widget Factory**")
	}
}

func TestGreetingVariesWithDescription(t *testing.T) {
	bare := Greeting(model.ModePlanner, "App", "")
	described := Greeting(model.ModePlanner, "App", "ship v1 by June")

	assert.NotEqual(t, bare, described)
	assert.Contains(t, described, `"ship v1 by June"`)
}

func TestGreetingUnknownModeFallsBack(t *testing.T) {
	assert.Equal(t,
		Greeting(model.ModeBrainstormer, "X", ""),
		Greeting(model.Mode("nonsense"), "X", ""))
}

func TestSkeletonPools(t *testing.T) {
	for _, mode := range model.Modes() {
		require.Len(t, Skeletons(mode), 4, "mode %s", mode)
		require.Len(t, FollowUps(mode), 4, "mode %s", mode)
	}

	assert.Equal(t, Skeletons(model.ModeBrainstormer), Skeletons(model.Mode("nonsense")))
	assert.Equal(t, FollowUps(model.ModeBrainstormer), FollowUps(model.Mode("nonsense")))
}

func TestFocusSkeletonsCarryActionLine(t *testing.T) {
	require.Len(t, FocusSkeletons(), 3)

	for _, s := range FocusSkeletons() {
		assert.Contains(t, s, "**Do this now:**")
	}
}

func TestDescriptions(t *testing.T) {
	for _, mode := range model.Modes() {
		assert.NotEmpty(t, Description(mode))
	}
}

func TestSystemPrompts(t *testing.T) {
	for _, mode := range model.Modes() {
		prompt := SystemPrompt(mode)
		require.NotEmpty(t, prompt)
		assert.True(t, strings.HasPrefix(prompt, "You are Synth"), "mode %s", mode)
	}

	assert.Equal(t, SystemPrompt(model.ModeBrainstormer), SystemPrompt(model.Mode("nonsense")))
}
