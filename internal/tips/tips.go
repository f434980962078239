package tips

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/abhisek/studyplan/internal/llm"
	"github.com/abhisek/studyplan/internal/models"
)

// Tip is a single piece of study advice.
type Tip struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Subjects []string `json:"subjects,omitempty"`
	Source   string   `json:"source"`
}

// Result is a batch of tips plus the generator that produced them.
type Result struct {
	Source string `json:"source"`
	Tips   []Tip  `json:"tips"`
}

// Input is the user data tips are personalized from.
type Input struct {
	Tasks   []models.Task
	Classes []models.Class
	Exams   []models.Exam
	Limit   int
}

// Generator produces study tips with the same two-tier strategy as slot
// generation: completion provider first, canned tips when it fails.
type Generator struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewGenerator wires the tips generator. provider may be nil.
func NewGenerator(provider llm.Provider, timeout time.Duration) *Generator {
	return &Generator{provider: provider, timeout: timeout}
}

const tipsSystemPrompt = `You are an academic planner assistant generating personalized study tips.

Respond with a JSON object only: {"tips": [...]}. Each tip has "title" (brief), "content" (detailed), "category" (one of: productivity, study technique, subject specific, time management, motivation, general), "tags" (keywords), and "subjects" (if applicable).`

// Generate returns up to in.Limit tips. Never fails; any provider problem
// degrades to the canned fallback list.
func (g *Generator) Generate(ctx context.Context, in Input) Result {
	limit := in.Limit
	if limit <= 0 || limit > 10 {
		limit = 5
	}
	in.Limit = limit

	if g.provider != nil {
		if tips, ok := g.tryPrimary(ctx, in); ok {
			return Result{Source: g.provider.Name(), Tips: tips}
		}
	}
	return Result{Source: models.SourceRuleBased, Tips: FallbackTips(in)}
}

func (g *Generator) tryPrimary(ctx context.Context, in Input) ([]Tip, bool) {
	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.provider.Complete(callCtx, llm.Request{
		System:      tipsSystemPrompt,
		Prompt:      buildTipsPrompt(in),
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		log.Printf("tips: provider failed, using fallback: %v", err)
		return nil, false
	}

	tips, err := parseTips(resp.Text)
	if err != nil {
		log.Printf("tips: unusable response, using fallback: %v", err)
		return nil, false
	}
	if len(tips) > in.Limit {
		tips = tips[:in.Limit]
	}
	for i := range tips {
		tips[i].Source = g.provider.Name()
	}
	return tips, true
}

func buildTipsPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d personalized study tips.\n\n", in.Limit)

	b.WriteString("Tasks:\n")
	if len(in.Tasks) == 0 {
		b.WriteString("None\n")
	}
	for _, t := range in.Tasks {
		fmt.Fprintf(&b, "- %q (%s), due %s\n", t.Title, t.Subject, t.DueDate.Format("2006-01-02"))
	}
	b.WriteString("\nClasses:\n")
	if len(in.Classes) == 0 {
		b.WriteString("None\n")
	}
	for _, c := range in.Classes {
		fmt.Fprintf(&b, "- %s on %s\n", c.Subject, c.DayOfWeek)
	}
	b.WriteString("\nUpcoming exams:\n")
	if len(in.Exams) == 0 {
		b.WriteString("None\n")
	}
	for _, e := range in.Exams {
		fmt.Fprintf(&b, "- %s on %s\n", e.Subject, e.Date.Format("2006-01-02"))
	}
	return b.String()
}

// parseTips extracts a {"tips": [...]} envelope or a bare array, tolerating
// prose around the JSON.
func parseTips(text string) ([]Tip, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	if start := strings.IndexByte(text, '{'); start >= 0 {
		if end := strings.LastIndexByte(text, '}'); end > start {
			var envelope struct {
				Tips []Tip `json:"tips"`
			}
			if err := json.Unmarshal([]byte(text[start:end+1]), &envelope); err == nil && len(envelope.Tips) > 0 {
				return envelope.Tips, nil
			}
		}
	}
	if start := strings.IndexByte(text, '['); start >= 0 {
		if end := strings.LastIndexByte(text, ']'); end > start {
			var tips []Tip
			if err := json.Unmarshal([]byte(text[start:end+1]), &tips); err == nil && len(tips) > 0 {
				return tips, nil
			}
		}
	}
	return nil, fmt.Errorf("no tips found in response")
}

// FallbackTips returns the canned tip list, with one subject-specific tip
// appended when the user has tasks. At most in.Limit tips.
func FallbackTips(in Input) []Tip {
	tips := []Tip{
		{
			Title:    "Use the Pomodoro Technique",
			Content:  "Break your study sessions into 25-minute focused blocks with 5-minute breaks. After 4 blocks, take a longer 15-30 minute break. This helps maintain focus and prevent burnout.",
			Category: "productivity",
			Tags:     []string{"time management", "focus", "efficiency"},
			Source:   models.SourceRuleBased,
		},
		{
			Title:    "Create a Dedicated Study Space",
			Content:  "Designate a specific area for studying that is free from distractions. This helps your brain associate that space with focus and productivity.",
			Category: "productivity",
			Tags:     []string{"environment", "focus", "habits"},
			Source:   models.SourceRuleBased,
		},
		{
			Title:    "Practice Active Recall",
			Content:  "Instead of passively re-reading notes, test yourself on the material. Try to recall information from memory before checking your notes. This strengthens memory pathways.",
			Category: "study technique",
			Tags:     []string{"memory", "retention", "effectiveness"},
			Source:   models.SourceRuleBased,
		},
		{
			Title:    "Use Spaced Repetition",
			Content:  "Review material at increasing intervals over time. This improves long-term retention compared to cramming everything at once.",
			Category: "study technique",
			Tags:     []string{"memory", "retention", "scheduling"},
			Source:   models.SourceRuleBased,
		},
		{
			Title:    "Take Care of Your Physical Health",
			Content:  "Regular exercise, adequate sleep, and proper nutrition significantly impact cognitive function and learning ability. Prioritize these aspects alongside your study schedule.",
			Category: "general",
			Tags:     []string{"health", "wellness", "performance"},
			Source:   models.SourceRuleBased,
		},
	}

	if subject := firstTaskSubject(in.Tasks); subject != "" {
		if subject == "Mathematics" || subject == "Math" {
			tips = append(tips, Tip{
				Title:    "Practice Math Problems Regularly",
				Content:  "For mathematics, consistent practice is key. Solve a variety of problems to build problem-solving skills and reinforce concepts.",
				Category: "subject specific",
				Tags:     []string{"practice", "problem-solving", "mathematics"},
				Subjects: []string{"Mathematics", "Math"},
				Source:   models.SourceRuleBased,
			})
		} else {
			tips = append(tips, Tip{
				Title:    fmt.Sprintf("Focus on %s Fundamentals", subject),
				Content:  fmt.Sprintf("When studying %s, ensure you have a solid understanding of the fundamental concepts before moving to more complex topics.", subject),
				Category: "subject specific",
				Tags:     []string{"fundamentals", "understanding", strings.ToLower(subject)},
				Subjects: []string{subject},
				Source:   models.SourceRuleBased,
			})
		}
	}

	limit := in.Limit
	if limit <= 0 {
		limit = 5
	}
	if len(tips) > limit {
		// Keep the subject-specific tip when one was added.
		if subject := firstTaskSubject(in.Tasks); subject != "" {
			specific := tips[len(tips)-1]
			tips = tips[:limit-1]
			tips = append(tips, specific)
		} else {
			tips = tips[:limit]
		}
	}
	return tips
}

func firstTaskSubject(tasks []models.Task) string {
	for _, t := range tasks {
		if t.Subject != "" {
			return t.Subject
		}
	}
	return ""
}
