package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"nextchapter/internal/dashboard"
	"nextchapter/internal/gateway"
	"nextchapter/internal/types"
	"nextchapter/internal/workflow"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeView", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeView", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "WorkflowResult", &WorkflowResultTextFormatter{})
	registry.RegisterFormatter("markdown", "WorkflowResult", &WorkflowResultTextFormatter{})
	registry.RegisterFormatter("text", "DashboardData", &DashboardTextFormatter{})
	registry.RegisterFormatter("markdown", "DashboardData", &DashboardMarkdownFormatter{})
	registry.RegisterFormatter("text", "ClientList", &ClientListTextFormatter{})
	registry.RegisterFormatter("markdown", "ClientList", &ClientListTextFormatter{})
	registry.RegisterFormatter("text", "OptimizeResult", &OptimizeTextFormatter{})
	registry.RegisterFormatter("markdown", "OptimizeResult", &OptimizeTextFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case *gateway.ResumeView:
		return "ResumeView"
	case *workflow.Result:
		return "WorkflowResult"
	case *dashboard.Data:
		return "DashboardData"
	case []types.Client:
		return "ClientList"
	case *gateway.OptimizeResult:
		return "OptimizeResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ResumeTextFormatter renders a structured resume for the terminal
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	view, ok := data.(*gateway.ResumeView)
	if !ok {
		return "", fmt.Errorf("expected *ResumeView, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== " + strings.ToUpper(view.Client.FullName()) + " ===\n")
	if view.Client.Phone != "" || view.Client.Email != "" {
		output.WriteString(contactLine(&view.Client))
		output.WriteString("\n")
	}
	output.WriteString("\n")

	if view.Record.ResumeTitle != "" {
		output.WriteString(fmt.Sprintf("Resume: %s (%s)\n\n", view.Record.ResumeTitle, view.Record.TemplateType))
	}

	profile := &view.Profile

	if profile.CareerObjective != "" {
		output.WriteString("=== OBJECTIVE ===\n")
		output.WriteString(profile.CareerObjective)
		output.WriteString("\n\n")
	}

	if len(profile.WorkHistory) > 0 {
		output.WriteString("=== WORK EXPERIENCE ===\n")
		for _, job := range profile.WorkHistory {
			output.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", job.JobTitle, job.Company, job.StartDate, job.EndDate))
			for _, line := range splitLines(job.Description) {
				output.WriteString("  - " + line + "\n")
			}
		}
		output.WriteString("\n")
	}

	if len(profile.Skills) > 0 {
		output.WriteString("=== SKILLS ===\n")
		for _, category := range profile.Skills {
			output.WriteString(fmt.Sprintf("%s: %s\n", category.Category, strings.Join(category.SkillList, ", ")))
		}
		output.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		output.WriteString("=== EDUCATION ===\n")
		for _, entry := range profile.Education {
			output.WriteString(fmt.Sprintf("%s, %s (%s - %s)\n", entry.Degree, entry.School, entry.StartDate, entry.EndDate))
		}
		output.WriteString("\n")
	}

	if len(profile.Certifications) > 0 {
		output.WriteString("=== CERTIFICATIONS ===\n")
		for _, cert := range profile.Certifications {
			line := cert.Name
			if cert.Issuer != "" {
				line += ", " + cert.Issuer
			}
			if cert.Date != "" {
				line += " (" + cert.Date + ")"
			}
			output.WriteString(line + "\n")
		}
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeView"
}

// ResumeMarkdownFormatter renders a structured resume as markdown
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	view, ok := data.(*gateway.ResumeView)
	if !ok {
		return "", fmt.Errorf("expected *ResumeView, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# " + view.Client.FullName() + "\n\n")
	if line := contactLine(&view.Client); line != "" {
		output.WriteString(line + "\n\n")
	}

	profile := &view.Profile

	if profile.CareerObjective != "" {
		output.WriteString("## Objective\n\n")
		output.WriteString(profile.CareerObjective)
		output.WriteString("\n\n")
	}

	if len(profile.WorkHistory) > 0 {
		output.WriteString("## Work Experience\n\n")
		for _, job := range profile.WorkHistory {
			output.WriteString(fmt.Sprintf("### %s, %s\n\n", job.JobTitle, job.Company))
			output.WriteString(fmt.Sprintf("*%s - %s*\n\n", job.StartDate, job.EndDate))
			for _, line := range splitLines(job.Description) {
				output.WriteString("- " + line + "\n")
			}
			output.WriteString("\n")
		}
	}

	if len(profile.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		for _, category := range profile.Skills {
			output.WriteString(fmt.Sprintf("**%s:** %s\n\n", category.Category, strings.Join(category.SkillList, ", ")))
		}
	}

	if len(profile.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, entry := range profile.Education {
			output.WriteString(fmt.Sprintf("- %s, %s (%s - %s)\n", entry.Degree, entry.School, entry.StartDate, entry.EndDate))
		}
		output.WriteString("\n")
	}

	if len(profile.Certifications) > 0 {
		output.WriteString("## Certifications\n\n")
		for _, cert := range profile.Certifications {
			line := "- " + cert.Name
			if cert.Issuer != "" {
				line += ", " + cert.Issuer
			}
			if cert.Date != "" {
				line += " (" + cert.Date + ")"
			}
			output.WriteString(line + "\n")
		}
	}

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeView"
}

// WorkflowResultTextFormatter summarizes a completed generation run
type WorkflowResultTextFormatter struct{}

func (wtf *WorkflowResultTextFormatter) Format(data any) (string, error) {
	result, ok := data.(*workflow.Result)
	if !ok {
		return "", fmt.Errorf("expected *workflow.Result, got %T", data)
	}

	var output strings.Builder
	output.WriteString("Resume generated.\n")
	output.WriteString(fmt.Sprintf("  Resume ID: %s\n", result.ResumeID))
	output.WriteString(fmt.Sprintf("  Saved to:  %s\n", result.OutputPath))
	if result.ReusedResume {
		output.WriteString("  Reused the existing resume record for this template.\n")
	}
	if result.PrintedLocally {
		output.WriteString("  Converted from printable HTML with a local headless browser.\n")
	}
	if result.Kind == workflow.ResultHTML {
		output.WriteString("\n" + result.Instructions + "\n")
	}
	return output.String(), nil
}

func (wtf *WorkflowResultTextFormatter) SupportedType() string {
	return "WorkflowResult"
}

// DashboardTextFormatter renders a dashboard snapshot for the terminal
type DashboardTextFormatter struct{}

func (dtf *DashboardTextFormatter) Format(data any) (string, error) {
	dash, ok := data.(*dashboard.Data)
	if !ok {
		return "", fmt.Errorf("expected *dashboard.Data, got %T", data)
	}

	var output strings.Builder

	writeHeader := func(title string, source dashboard.Source, count int) {
		output.WriteString(fmt.Sprintf("=== %s (%d)%s ===\n", title, count, sourceSuffix(dash, source)))
	}

	writeHeader("NOTES", dashboard.SourceNotes, len(dash.Notes))
	for _, note := range dash.Notes {
		output.WriteString("- " + note.Text + "\n")
	}
	output.WriteString("\n")

	writeHeader("DOCUMENTS", dashboard.SourceDocuments, len(dash.Documents))
	for _, doc := range dash.Documents {
		output.WriteString("- " + doc.Name + "\n")
	}
	output.WriteString("\n")

	writeHeader("SAVED JOBS", dashboard.SourceBookmarks, len(dash.Bookmarks))
	for _, bookmark := range dash.Bookmarks {
		output.WriteString(fmt.Sprintf("- %s at %s\n", bookmark.Title, bookmark.Company))
	}
	output.WriteString("\n")

	writeHeader("RESOURCES", dashboard.SourceResources, len(dash.Resources))
	for _, resource := range dash.Resources {
		output.WriteString(fmt.Sprintf("- [%s] %s\n", resource.Category, resource.Title))
	}

	return output.String(), nil
}

func (dtf *DashboardTextFormatter) SupportedType() string {
	return "DashboardData"
}

// DashboardMarkdownFormatter renders a dashboard snapshot as markdown
type DashboardMarkdownFormatter struct{}

func (dmf *DashboardMarkdownFormatter) Format(data any) (string, error) {
	dash, ok := data.(*dashboard.Data)
	if !ok {
		return "", fmt.Errorf("expected *dashboard.Data, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("## Notes%s\n\n", sourceSuffix(dash, dashboard.SourceNotes)))
	for _, note := range dash.Notes {
		output.WriteString("- " + note.Text + "\n")
	}
	output.WriteString("\n")

	output.WriteString(fmt.Sprintf("## Documents%s\n\n", sourceSuffix(dash, dashboard.SourceDocuments)))
	for _, doc := range dash.Documents {
		output.WriteString("- " + doc.Name + "\n")
	}
	output.WriteString("\n")

	output.WriteString(fmt.Sprintf("## Saved Jobs%s\n\n", sourceSuffix(dash, dashboard.SourceBookmarks)))
	for _, bookmark := range dash.Bookmarks {
		output.WriteString(fmt.Sprintf("- **%s** at %s\n", bookmark.Title, bookmark.Company))
	}
	output.WriteString("\n")

	output.WriteString(fmt.Sprintf("## Resources%s\n\n", sourceSuffix(dash, dashboard.SourceResources)))
	for _, resource := range dash.Resources {
		output.WriteString(fmt.Sprintf("- **%s**: %s\n", resource.Category, resource.Title))
	}

	return output.String(), nil
}

func (dmf *DashboardMarkdownFormatter) SupportedType() string {
	return "DashboardData"
}

// ClientListTextFormatter renders a client roster
type ClientListTextFormatter struct{}

func (clf *ClientListTextFormatter) Format(data any) (string, error) {
	clients, ok := data.([]types.Client)
	if !ok {
		return "", fmt.Errorf("expected []types.Client, got %T", data)
	}

	if len(clients) == 0 {
		return "No clients found.\n", nil
	}

	var output strings.Builder
	for _, client := range clients {
		output.WriteString(fmt.Sprintf("%-12s %s\n", client.ClientID, client.FullName()))
	}
	return output.String(), nil
}

func (clf *ClientListTextFormatter) SupportedType() string {
	return "ClientList"
}

// OptimizeTextFormatter renders an ATS optimization result
type OptimizeTextFormatter struct{}

func (otf *OptimizeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(*gateway.OptimizeResult)
	if !ok {
		return "", fmt.Errorf("expected *OptimizeResult, got %T", data)
	}
	return fmt.Sprintf("Optimization complete. ATS score improvement: %+d\n", result.ATSScoreImprovement), nil
}

func (otf *OptimizeTextFormatter) SupportedType() string {
	return "OptimizeResult"
}

func sourceSuffix(dash *dashboard.Data, source dashboard.Source) string {
	status, ok := dash.Status[source]
	if !ok {
		return ""
	}
	switch {
	case status.Err != nil:
		return " [unavailable]"
	case status.FromCache:
		return " [cached]"
	default:
		return ""
	}
}

func contactLine(client *types.Client) string {
	switch {
	case client.Phone != "" && client.Email != "":
		return client.Phone + " | " + client.Email
	case client.Phone != "":
		return client.Phone
	default:
		return client.Email
	}
}

func splitLines(description string) []string {
	var lines []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		line = strings.TrimSpace(strings.TrimPrefix(line, "•"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
