package formatters

import (
	"strings"
	"testing"

	"nextchapter/internal/dashboard"
	"nextchapter/internal/gateway"
	"nextchapter/internal/types"
	"nextchapter/internal/workflow"
)

func sampleView() *gateway.ResumeView {
	return &gateway.ResumeView{
		Record: types.ResumeRecord{ResumeID: "r1", ResumeTitle: "Classic Resume for Maria Santos", TemplateType: "classic"},
		Client: types.Client{ClientID: "c1", FirstName: "Maria", LastName: "Santos", Phone: "555-0100", Email: "maria@example.org"},
		Profile: types.EmploymentProfile{
			CareerObjective: "Warehouse associate position",
			WorkHistory: []types.WorkExperience{
				{JobTitle: "Line Cook", Company: "Diner", StartDate: "2019", EndDate: "2021", Description: "Prepped meals\nTrained new staff"},
			},
			Skills: []types.SkillCategory{{Category: "Warehouse", SkillList: []string{"Forklift", "Inventory"}}},
		},
	}
}

func TestRegistryDispatch(t *testing.T) {
	registry := NewFormatterRegistry()

	tests := []struct {
		name     string
		data     any
		format   string
		expected string
	}{
		{
			name:     "resume view as text",
			data:     sampleView(),
			format:   "text",
			expected: "=== MARIA SANTOS ===",
		},
		{
			name:     "resume view as markdown",
			data:     sampleView(),
			format:   "markdown",
			expected: "# Maria Santos",
		},
		{
			name:     "anything as json",
			data:     sampleView(),
			format:   "json",
			expected: `"resume_id": "r1"`,
		},
		{
			name:     "client list as text",
			data:     []types.Client{{ClientID: "c1", FirstName: "Maria", LastName: "Santos"}},
			format:   "text",
			expected: "Maria Santos",
		},
		{
			name:     "optimize result as text",
			data:     &gateway.OptimizeResult{ATSScoreImprovement: 12},
			format:   "text",
			expected: "+12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.Format(tt.data, tt.format)
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			if !strings.Contains(got, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, got)
			}
		})
	}
}

func TestRegistryUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	if _, err := registry.Format(sampleView(), "yaml"); err == nil {
		t.Error("Expected an error for an unregistered format")
	}
}

func TestResumeTextOmitsEmptySections(t *testing.T) {
	view := sampleView()
	view.Profile.Education = nil
	view.Profile.Certifications = nil

	got, err := (&ResumeTextFormatter{}).Format(view)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.Contains(got, "EDUCATION") || strings.Contains(got, "CERTIFICATIONS") {
		t.Errorf("Expected empty sections to be omitted:\n%s", got)
	}
	if !strings.Contains(got, "Prepped meals") {
		t.Errorf("Expected work bullets in output:\n%s", got)
	}
}

func TestDashboardTextMarksDegradedSources(t *testing.T) {
	dash := &dashboard.Data{
		Notes: []types.Note{{NoteID: "n1", Text: "Met for intake"}},
		Status: map[dashboard.Source]dashboard.SourceStatus{
			dashboard.SourceNotes:     {FromCache: true},
			dashboard.SourceDocuments: {Err: errForTest("docs down")},
		},
	}

	got, err := (&DashboardTextFormatter{}).Format(dash)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(got, "NOTES (1) [cached]") {
		t.Errorf("Expected the cached marker on notes:\n%s", got)
	}
	if !strings.Contains(got, "DOCUMENTS (0) [unavailable]") {
		t.Errorf("Expected the unavailable marker on documents:\n%s", got)
	}
}

func TestWorkflowResultIncludesInstructions(t *testing.T) {
	result := &workflow.Result{
		ResumeID:     "r1",
		OutputPath:   "/tmp/resume_Maria_Santos_r1_2026-08-29.html",
		Kind:         workflow.ResultHTML,
		Instructions: "Open it in a browser and use Print > Save as PDF.",
	}

	got, err := (&WorkflowResultTextFormatter{}).Format(result)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(got, "Print > Save as PDF") {
		t.Errorf("Expected the fallback instructions:\n%s", got)
	}
}

type errForTest string

func (e errForTest) Error() string { return string(e) }
