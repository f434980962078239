package tips

import "strings"

// TaskAnalysis is the metadata extracted from a task's free text.
type TaskAnalysis struct {
	Subject string
	// TaskType is one of: exam, assignment, project, reading, writing,
	// practice, unknown.
	TaskType string
	// Complexity is a 1-5 estimate, defaulting to 3.
	Complexity int
}

type keywordCategory struct {
	name     string
	keywords []string
}

// Ordered so ties resolve the same way every run.
var subjectKeywords = []keywordCategory{
	{"math", []string{"math", "mathematics", "algebra", "calculus", "geometry", "statistics", "equation", "theorem", "formula"}},
	{"physics", []string{"physics", "mechanics", "dynamics", "kinematics", "electricity", "magnetism", "quantum", "relativity"}},
	{"chemistry", []string{"chemistry", "chemical", "molecule", "atom", "reaction", "compound", "acid", "base", "organic"}},
	{"biology", []string{"biology", "cell", "organism", "gene", "dna", "evolution", "ecology", "anatomy", "physiology"}},
	{"history", []string{"history", "historical", "century", "war", "revolution", "civilization", "empire", "dynasty", "era"}},
	{"literature", []string{"literature", "novel", "poem", "author", "character", "plot", "theme", "essay", "writing"}},
	{"programming", []string{"programming", "code", "algorithm", "function", "variable", "class", "object", "database", "api"}},
	{"language", []string{"language", "grammar", "vocabulary", "verb", "noun", "adjective", "pronunciation", "translation"}},
}

var taskTypeKeywords = []keywordCategory{
	{"exam", []string{"exam", "test", "quiz", "midterm", "final", "assessment"}},
	{"assignment", []string{"assignment", "homework", "problem set", "worksheet", "exercise"}},
	{"project", []string{"project", "presentation", "report", "research", "investigation"}},
	{"reading", []string{"reading", "textbook", "chapter", "article", "paper", "book"}},
	{"writing", []string{"writing", "essay", "paper", "composition", "thesis", "dissertation"}},
	{"practice", []string{"practice", "review", "revision", "preparation", "study"}},
}

var highComplexityKeywords = []string{"complex", "difficult", "challenging", "advanced", "comprehensive", "in-depth"}
var lowComplexityKeywords = []string{"simple", "basic", "easy", "introductory", "fundamental", "brief"}

// AnalyzeTask classifies a task description by keyword matching. Unmatched
// dimensions come back as "unknown" with medium complexity.
func AnalyzeTask(description string) TaskAnalysis {
	out := TaskAnalysis{Subject: "unknown", TaskType: "unknown", Complexity: 3}
	if description == "" {
		return out
	}
	text := strings.ToLower(description)

	out.Subject = bestMatch(text, subjectKeywords, out.Subject)
	out.TaskType = bestMatch(text, taskTypeKeywords, out.TaskType)

	high := countMatches(text, highComplexityKeywords)
	low := countMatches(text, lowComplexityKeywords)
	switch {
	case high > low:
		out.Complexity = 4
		if high > 2 {
			out.Complexity = 5
		}
	case low > high:
		out.Complexity = 2
		if low > 2 {
			out.Complexity = 1
		}
	}
	return out
}

// ExamLike reports whether the task type indicates a test of some kind.
func (a TaskAnalysis) ExamLike() bool {
	return a.TaskType == "exam"
}

func bestMatch(text string, categories []keywordCategory, fallback string) string {
	best, bestCount := fallback, 0
	for _, cat := range categories {
		if n := countMatches(text, cat.keywords); n > bestCount {
			best, bestCount = cat.name, n
		}
	}
	return best
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
