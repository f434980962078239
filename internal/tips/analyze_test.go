package tips

import "testing"

func TestAnalyzeTask(t *testing.T) {
	tests := []struct {
		name       string
		desc       string
		subject    string
		taskType   string
		complexity int
	}{
		{"empty", "", "unknown", "unknown", 3},
		{"math homework", "Complete algebra homework on quadratic equations", "math", "assignment", 3},
		{"physics exam", "Study kinematics and dynamics for the physics midterm exam", "physics", "exam", 3},
		{"hard project", "Comprehensive and challenging research project on organic chemistry", "chemistry", "project", 4},
		{"easy reading", "Read the brief introductory chapter, simple and basic material", "unknown", "reading", 1},
		{"programming", "Implement the sorting algorithm and database layer", "programming", "unknown", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeTask(tt.desc)
			if got.Subject != tt.subject {
				t.Errorf("subject = %q, want %q", got.Subject, tt.subject)
			}
			if got.TaskType != tt.taskType {
				t.Errorf("taskType = %q, want %q", got.TaskType, tt.taskType)
			}
			if got.Complexity != tt.complexity {
				t.Errorf("complexity = %d, want %d", got.Complexity, tt.complexity)
			}
		})
	}
}

func TestExamLike(t *testing.T) {
	if !AnalyzeTask("final exam revision").ExamLike() {
		t.Error("expected exam-like")
	}
	if AnalyzeTask("weekly homework assignment").ExamLike() {
		t.Error("expected not exam-like")
	}
}
