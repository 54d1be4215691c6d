// Package fallback synthesizes deterministic-shaped template replies when
// the live provider path is unavailable.
package fallback

import (
	"math/rand"
	"sync"
	"time"

	"synth/app/model"
	"synth/app/service/templates"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

const followUpPrefix = "\n\n**Next:** "

// Generator picks a skeleton at random and fills its slots from the user's
// text. The random source is injected so tests can fix the seed.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func New(_ *do.Injector) (*Generator, error) {
	return NewWithSeed(time.Now().UnixNano()), nil
}

func NewWithSeed(seed int64) *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// Generate never fails: missing topic words degrade to generic filler, never
// to an empty or malformed reply.
func (g *Generator) Generate(mode model.Mode, userText string, dailyFocus bool) string {
	s := slots{
		text:  userText,
		words: topicWords(userText),
	}

	if dailyFocus && mode == model.ModePlanner {
		return fill(g.pick(templates.FocusSkeletons()), s)
	}

	reply := fill(g.pick(templates.Skeletons(mode)), s)

	return reply + followUpPrefix + g.pick(templates.FollowUps(mode))
}

// Chance reports true with probability p.
func (g *Generator) Chance(p float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.rnd.Float64() < p
}

func (g *Generator) pick(set []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return set[g.rnd.Intn(len(set))]
}

func topicWords(text string) []string {
	return pie.Filter(splitWords(text), func(w string) bool {
		return len(w) > 3
	})
}
