package types

import "time"

// EmploymentProfile is the in-memory employment profile being edited for a
// client. It is created empty at the start of an editing session and only
// persisted remotely through the profile endpoint.
type EmploymentProfile struct {
	CareerObjective string           `json:"careerObjective"`
	WorkHistory     []WorkExperience `json:"workHistory"`
	Education       []EducationEntry `json:"education"`
	Skills          []SkillCategory  `json:"skills"`
	Certifications  []Certification  `json:"certifications"`
}

// WorkExperience is one job entry. Description holds newline-delimited
// bullet lines; insertion order is display order.
type WorkExperience struct {
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// EducationEntry is one school or program entry.
type EducationEntry struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Location  string `json:"location"`
}

// SkillCategory groups skills under a label. Skills are unique in practice
// but uniqueness is not enforced.
type SkillCategory struct {
	Category  string   `json:"category"`
	SkillList []string `json:"skillList"`
}

// Certification is one certificate or license entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// ResumeRecord mirrors a server-owned resume row. The client only caches
// lists of these; the gateway is the source of truth.
type ResumeRecord struct {
	ResumeID     string    `json:"resume_id"`
	ResumeTitle  string    `json:"resume_title"`
	TemplateType string    `json:"template_type"`
	ATSScore     int       `json:"ats_score"`
	PDFAvailable bool      `json:"pdf_available"`
	CreatedAt    time.Time `json:"created_at"`
}

// Client is a case-managed client as returned by the gateway.
type Client struct {
	ClientID  string `json:"clientId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullName returns "First Last" with whatever parts are present.
func (c *Client) FullName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	default:
		return c.LastName
	}
}
