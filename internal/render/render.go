package render

import (
	"html/template"
	"strings"

	"nextchapter/internal/types"
)

// Placeholder text rendered when a present entry is missing a field. The
// gaps stay visible so case managers can see what still needs filling in.
const (
	placeholderName      = "Your Name"
	placeholderPhone     = "(555) 555-5555"
	placeholderEmail     = "email@example.com"
	placeholderJobTitle  = "Job Title"
	placeholderCompany   = "Company Name"
	placeholderStartDate = "Start Date"
	placeholderEndDate   = "End Date"
	placeholderSchool    = "School Name"
	placeholderDegree    = "Degree or Program"
	placeholderCertName  = "Certification Name"
)

type experienceView struct {
	JobTitle string
	Company  string
	Dates    string
	Location string
	Bullets  []string
}

type educationView struct {
	School   string
	Degree   string
	Dates    string
	Location string
}

type skillView struct {
	Category string
	Skills   string
}

type certificationView struct {
	Name   string
	Issuer string
	Date   string
}

type documentView struct {
	Styles         StyleBundle
	FullName       string
	ContactLine    string
	Objective      string
	Experience     []experienceView
	Skills         []skillView
	Education      []educationView
	Certifications []certificationView
}

var documentTmpl = template.Must(template.New("resume").Parse(`<div class="resume" style="{{.Styles.Container}}">
  <header style="{{.Styles.Header}}">
    <div class="resume-name" style="{{.Styles.Name}}">{{.FullName}}</div>
    <div class="resume-contact" style="{{.Styles.Contact}}">{{.ContactLine}}</div>
  </header>
{{- if .Objective}}
  <section class="objective">
    <h2 style="{{.Styles.SectionTitle}}">Career Objective</h2>
    <p>{{.Objective}}</p>
  </section>
{{- end}}
{{- if .Experience}}
  <section class="experience">
    <h2 style="{{.Styles.SectionTitle}}">Work Experience</h2>
{{- range .Experience}}
    <div class="entry">
      <div class="entry-title"><strong>{{.JobTitle}}</strong> &mdash; {{.Company}}</div>
      <div class="entry-meta">{{.Dates}}{{if .Location}} &middot; {{.Location}}{{end}}</div>
{{- if .Bullets}}
      <ul>
{{- range .Bullets}}
        <li>{{.}}</li>
{{- end}}
      </ul>
{{- end}}
    </div>
{{- end}}
  </section>
{{- end}}
{{- if .Skills}}
  <section class="skills">
    <h2 style="{{.Styles.SectionTitle}}">Skills</h2>
{{- range .Skills}}
    <div class="entry"><strong>{{.Category}}:</strong> {{.Skills}}</div>
{{- end}}
  </section>
{{- end}}
{{- if .Education}}
  <section class="education">
    <h2 style="{{.Styles.SectionTitle}}">Education</h2>
{{- range .Education}}
    <div class="entry">
      <div class="entry-title"><strong>{{.Degree}}</strong> &mdash; {{.School}}</div>
      <div class="entry-meta">{{.Dates}}{{if .Location}} &middot; {{.Location}}{{end}}</div>
    </div>
{{- end}}
  </section>
{{- end}}
{{- if .Certifications}}
  <section class="certifications">
    <h2 style="{{.Styles.SectionTitle}}">Certifications</h2>
{{- range .Certifications}}
    <div class="entry">{{.Name}}{{if .Issuer}} &mdash; {{.Issuer}}{{end}}{{if .Date}} ({{.Date}}){{end}}</div>
{{- end}}
  </section>
{{- end}}
</div>
`))

// Render produces the visual document markup for a profile under the given
// template. It is pure: same inputs, same markup, no I/O. Unknown template
// ids fall back to the classic styles.
func Render(client *types.Client, profile *types.EmploymentProfile, templateID string) string {
	tmpl := Lookup(templateID)
	view := buildView(client, profile, tmpl)

	var b strings.Builder
	// The template is static and the view is plain data, so this cannot fail.
	if err := documentTmpl.Execute(&b, view); err != nil {
		return ""
	}
	return b.String()
}

func buildView(client *types.Client, profile *types.EmploymentProfile, tmpl *Template) documentView {
	view := documentView{Styles: tmpl.Styles, FullName: placeholderName}

	var email, phone string
	if client != nil {
		if name := client.FullName(); name != "" {
			view.FullName = name
		}
		email = client.Email
		phone = client.Phone
	}
	view.ContactLine = contactLine(phone, email)

	if profile == nil {
		return view
	}

	view.Objective = strings.TrimSpace(profile.CareerObjective)

	for _, exp := range profile.WorkHistory {
		view.Experience = append(view.Experience, experienceView{
			JobTitle: orPlaceholder(exp.JobTitle, placeholderJobTitle),
			Company:  orPlaceholder(exp.Company, placeholderCompany),
			Dates:    dateRange(exp.StartDate, exp.EndDate),
			Location: strings.TrimSpace(exp.Location),
			Bullets:  SplitBullets(exp.Description),
		})
	}

	for _, cat := range profile.Skills {
		if strings.TrimSpace(cat.Category) == "" && len(cat.SkillList) == 0 {
			continue
		}
		view.Skills = append(view.Skills, skillView{
			Category: orPlaceholder(cat.Category, "Skills"),
			Skills:   strings.Join(cat.SkillList, ", "),
		})
	}

	for _, edu := range profile.Education {
		view.Education = append(view.Education, educationView{
			School:   orPlaceholder(edu.School, placeholderSchool),
			Degree:   orPlaceholder(edu.Degree, placeholderDegree),
			Dates:    dateRange(edu.StartDate, edu.EndDate),
			Location: strings.TrimSpace(edu.Location),
		})
	}

	for _, cert := range profile.Certifications {
		view.Certifications = append(view.Certifications, certificationView{
			Name:   orPlaceholder(cert.Name, placeholderCertName),
			Issuer: strings.TrimSpace(cert.Issuer),
			Date:   strings.TrimSpace(cert.Date),
		})
	}

	return view
}

// SplitBullets turns a newline-delimited description into bullet lines.
// Blank lines are dropped and a leading bullet glyph is stripped so lines
// pasted from an existing resume do not double up.
func SplitBullets(description string) []string {
	var bullets []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "•"))
		line = strings.TrimSpace(strings.TrimPrefix(line, "-"))
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
	}
	return bullets
}

func contactLine(phone, email string) string {
	if strings.TrimSpace(phone) == "" {
		phone = placeholderPhone
	}
	if strings.TrimSpace(email) == "" {
		email = placeholderEmail
	}
	return phone + " | " + email
}

func dateRange(start, end string) string {
	return orPlaceholder(start, placeholderStartDate) + " - " + orPlaceholder(end, placeholderEndDate)
}

func orPlaceholder(value, placeholder string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return placeholder
	}
	return value
}
