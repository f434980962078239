package llm

import "context"

// Provider is the text-completion abstraction the schedule and tips
// generators depend on. The service is treated as opaque, potentially slow
// and potentially failing; callers bound it with a context deadline and
// fall back to rule-based generation on any error.
type Provider interface {
	// Complete sends a single-turn prompt and returns the raw text the
	// model produced. No assumption is made about the shape of the text;
	// lenient JSON extraction happens in the caller.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider identifier recorded in generated slots'
	// source field, e.g. "gemini", "openai", "anthropic".
	Name() string
}

// Request describes what to send to the completion service.
type Request struct {
	// System sets the model's role and constraints. Optional.
	System string

	// Prompt is the user message. The schedule generator serializes the
	// student's tasks, classes, exams and preferences into it.
	Prompt string

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0.
	Temperature float64
}

// Response holds the completion output.
type Response struct {
	// Text is the raw model output, prose wrapping and all.
	Text string

	// Model is the concrete model that served the request.
	Model string

	// Usage reports token consumption.
	Usage Usage
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
