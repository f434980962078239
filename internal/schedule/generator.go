package schedule

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/models"
)

// Generator runs the two-tier slot generation strategy: a text completion
// provider first, the deterministic fallback planner whenever the provider
// fails, times out, or returns unusable output. Primary-path failures are
// logged and never surfaced to the caller.
type Generator struct {
	provider llm.Provider
	fallback *FallbackPlanner
	policy   Policy

	timeout     time.Duration
	maxTokens   int
	temperature float64
}

// NewGenerator wires the generator. provider may be nil, in which case
// every request takes the fallback path.
func NewGenerator(provider llm.Provider, policy Policy, timeout time.Duration, maxTokens int, temperature float64) *Generator {
	return &Generator{
		provider:    provider,
		fallback:    NewFallbackPlanner(policy),
		policy:      policy,
		timeout:     timeout,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Generate produces candidate slots for the given context. The result is
// deduplicated and sorted ascending by start time regardless of which path
// produced it.
func (g *Generator) Generate(ctx context.Context, gctx Context) Result {
	if gctx.Days <= 0 {
		gctx.Days = 7
	}

	if g.provider != nil {
		if slots, ok := g.tryPrimary(ctx, gctx); ok {
			return Result{Source: g.provider.Name(), Slots: slots}
		}
	}

	return Result{Source: models.SourceRuleBased, Slots: g.fallback.Plan(gctx)}
}

// tryPrimary runs the completion request and converts the response into
// slots. Any failure, or an empty usable set, reports ok=false so the
// caller falls through to the fallback planner.
func (g *Generator) tryPrimary(ctx context.Context, gctx Context) ([]models.StudySlot, bool) {
	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.provider.Complete(callCtx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(gctx, g.policy),
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		log.Printf("schedule: primary path failed, using fallback: %v", err)
		return nil, false
	}

	parsed := ParseSlots(resp.Text)
	if !parsed.OK {
		log.Printf("schedule: unusable primary response (%s), using fallback", parsed.Reason)
		return nil, false
	}
	if err := validateSlotArray(parsed.Slots); err != nil {
		log.Printf("schedule: primary response failed validation, using fallback: %v", err)
		return nil, false
	}

	slots := g.convert(gctx, parsed.Slots)
	if len(slots) == 0 {
		log.Printf("schedule: primary response yielded no usable slots, using fallback")
		return nil, false
	}
	return slots, true
}

// convert turns raw response slots into model slots, dropping entries with
// unusable timestamps or inverted intervals. Surviving slots are
// deduplicated and sorted.
func (g *Generator) convert(gctx Context, raw []RawSlot) []models.StudySlot {
	loc := gctx.Now.Location()
	seen := make(dedupSet, len(raw))
	var slots []models.StudySlot

	for _, r := range raw {
		start, ok := parseSlotTime(r.StartTime, loc)
		if !ok {
			log.Printf("schedule: dropping slot %q: bad startTime %q", r.Title, r.StartTime)
			continue
		}
		var end time.Time
		if r.EndTime != "" {
			end, ok = parseSlotTime(r.EndTime, loc)
			if !ok {
				log.Printf("schedule: dropping slot %q: bad endTime %q", r.Title, r.EndTime)
				continue
			}
		} else {
			end = start.Add(time.Duration(r.Duration) * time.Minute)
		}
		if !end.After(start) {
			log.Printf("schedule: dropping slot %q: end not after start", r.Title)
			continue
		}

		priority := r.Priority
		if priority < 1 || priority > 5 {
			priority = 3
		}

		slot := models.StudySlot{
			OwnerID:         gctx.OwnerID,
			Title:           r.Title,
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: int(end.Sub(start).Minutes()),
			Origin:          models.OriginAIGenerated,
			Priority:        priority,
			Notes:           r.Notes,
			Source:          g.provider.Name(),
		}
		if seen.add(slot) {
			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime.Before(slots[j].StartTime) })
	return slots
}
