package render

import (
	"strings"
	"testing"

	"nextchapter/internal/types"
)

func sampleProfile() *types.EmploymentProfile {
	return &types.EmploymentProfile{
		CareerObjective: "Seeking entry-level food service role",
		WorkHistory: []types.WorkExperience{
			{
				JobTitle:    "Line Cook",
				Company:     "Harbor Diner",
				StartDate:   "2021-03",
				EndDate:     "2023-08",
				Location:    "Oakland, CA",
				Description: "Prepped daily specials\n• Trained two new hires\n\nKept station inspection-ready",
			},
		},
		Education: []types.EducationEntry{
			{School: "Laney College", Degree: "Culinary Arts Certificate", StartDate: "2019", EndDate: "2020"},
		},
		Skills: []types.SkillCategory{
			{Category: "Kitchen", SkillList: []string{"Food prep", "Knife skills", "Sanitation"}},
		},
		Certifications: []types.Certification{
			{Name: "ServSafe Food Handler", Issuer: "National Restaurant Association", Date: "2022"},
		},
	}
}

func sampleClient() *types.Client {
	return &types.Client{
		ClientID:  "c1",
		FirstName: "Maria",
		LastName:  "Santos",
		Email:     "maria@example.com",
		Phone:     "510-555-0142",
	}
}

func TestRenderUnknownTemplateFallsBackToClassic(t *testing.T) {
	client := sampleClient()
	profile := sampleProfile()

	got := Render(client, profile, "nonexistent-id")
	want := Render(client, profile, "classic")

	if got != want {
		t.Errorf("Expected unknown template id to render identically to classic")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	client := sampleClient()
	profile := sampleProfile()

	first := Render(client, profile, "modern")
	second := Render(client, profile, "modern")

	if first != second {
		t.Errorf("Expected identical markup for identical inputs")
	}
}

func TestRenderSectionOmission(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *types.EmploymentProfile)
		absent string
	}{
		{
			name:   "empty work history omits experience section",
			mutate: func(p *types.EmploymentProfile) { p.WorkHistory = nil },
			absent: `class="experience"`,
		},
		{
			name:   "blank objective omits objective section",
			mutate: func(p *types.EmploymentProfile) { p.CareerObjective = "   " },
			absent: `class="objective"`,
		},
		{
			name:   "empty skills omits skills section",
			mutate: func(p *types.EmploymentProfile) { p.Skills = nil },
			absent: `class="skills"`,
		},
		{
			name:   "empty education omits education section",
			mutate: func(p *types.EmploymentProfile) { p.Education = nil },
			absent: `class="education"`,
		},
		{
			name:   "empty certifications omits certifications section",
			mutate: func(p *types.EmploymentProfile) { p.Certifications = nil },
			absent: `class="certifications"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := sampleProfile()
			tt.mutate(profile)

			markup := Render(sampleClient(), profile, "classic")
			if strings.Contains(markup, tt.absent) {
				t.Errorf("Expected markup without %q, but it was present", tt.absent)
			}
		})
	}
}

func TestRenderPlaceholders(t *testing.T) {
	profile := &types.EmploymentProfile{
		CareerObjective: "Ready to work",
		WorkHistory: []types.WorkExperience{
			{Description: "Did the work"},
		},
	}

	markup := Render(nil, profile, "classic")

	for _, want := range []string{
		"Your Name", "(555) 555-5555", "email@example.com",
		"Job Title", "Company Name", "Start Date", "End Date",
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("Expected placeholder %q in markup", want)
		}
	}
}

func TestRenderContactLineUsesClientFields(t *testing.T) {
	markup := Render(sampleClient(), sampleProfile(), "classic")

	if !strings.Contains(markup, "Maria Santos") {
		t.Errorf("Expected client name in header")
	}
	if !strings.Contains(markup, "510-555-0142 | maria@example.com") {
		t.Errorf("Expected contact line with phone and email")
	}
	if strings.Contains(markup, "(555) 555-5555") {
		t.Errorf("Did not expect phone placeholder when phone is set")
	}
}

func TestSplitBullets(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    []string
	}{
		{
			name:        "plain lines",
			description: "First task\nSecond task",
			expected:    []string{"First task", "Second task"},
		},
		{
			name:        "existing bullet glyphs stripped",
			description: "• Ran the register\n•  Counted the drawer",
			expected:    []string{"Ran the register", "Counted the drawer"},
		},
		{
			name:        "dash bullets stripped",
			description: "- Stocked shelves\n- Swept floors",
			expected:    []string{"Stocked shelves", "Swept floors"},
		},
		{
			name:        "blank lines dropped",
			description: "One\n\n   \nTwo",
			expected:    []string{"One", "Two"},
		},
		{
			name:        "empty description",
			description: "",
			expected:    nil,
		},
		{
			name:        "bullet glyph only",
			description: "•\n• Real line",
			expected:    []string{"Real line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitBullets(tt.description)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d bullets, got %d (%v)", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Expected bullet[%d] = %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestLookup(t *testing.T) {
	if Lookup("warehouse").Name != "Warehouse & Trades" {
		t.Errorf("Expected warehouse template by id")
	}
	if Lookup("no-such-template").ID != DefaultTemplateID {
		t.Errorf("Expected fallback to %q for unknown id", DefaultTemplateID)
	}
	if len(Catalog()) != 6 {
		t.Errorf("Expected six templates in the catalog, got %d", len(Catalog()))
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
	}{
		{
			name: "valid profile",
			raw:  `{"careerObjective": "Ready to work", "skills": [{"category": "Kitchen", "skillList": ["Prep"]}]}`,
		},
		{
			name:        "wrong field type",
			raw:         `{"careerObjective": 42}`,
			expectError: true,
		},
		{
			name:        "unknown field rejected",
			raw:         `{"salary": "high"}`,
			expectError: true,
		},
		{
			name:        "not json",
			raw:         `objective: ready`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := ParseProfile([]byte(tt.raw))
			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if profile == nil {
				t.Fatalf("Expected a profile")
			}
		})
	}
}
