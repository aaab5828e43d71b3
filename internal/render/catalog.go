package render

import "html/template"

// StyleBundle holds the per-template styling tokens referenced by the
// rendered markup. The tokens are fixed catalog constants, never user
// input, so they are typed as trusted CSS.
type StyleBundle struct {
	Container    template.CSS
	Header       template.CSS
	Name         template.CSS
	Contact      template.CSS
	SectionTitle template.CSS
	Accent       string
}

// Template is an immutable catalog entry. Selection is always by reference
// into the catalog; entries are never copied or mutated.
type Template struct {
	ID     string
	Name   string
	Styles StyleBundle
}

// DefaultTemplateID is the fallback applied when an unknown template id is
// requested.
const DefaultTemplateID = "classic"

var catalog = []Template{
	{
		ID:   "classic",
		Name: "Classic",
		Styles: StyleBundle{
			Container:    "font-family: Georgia, serif; color: #1a1a1a; padding: 32px;",
			Header:       "border-bottom: 2px solid #1a1a1a; padding-bottom: 12px;",
			Name:         "font-size: 26px; font-weight: bold; letter-spacing: 1px;",
			Contact:      "font-size: 12px; color: #444;",
			SectionTitle: "font-size: 14px; font-weight: bold; text-transform: uppercase; border-bottom: 1px solid #999;",
			Accent:       "#1a1a1a",
		},
	},
	{
		ID:   "modern",
		Name: "Modern",
		Styles: StyleBundle{
			Container:    "font-family: Helvetica, Arial, sans-serif; color: #222; padding: 28px;",
			Header:       "background: #f4f6f8; padding: 16px; border-left: 4px solid #2563eb;",
			Name:         "font-size: 28px; font-weight: 600; color: #2563eb;",
			Contact:      "font-size: 12px; color: #555;",
			SectionTitle: "font-size: 13px; font-weight: 600; color: #2563eb; text-transform: uppercase;",
			Accent:       "#2563eb",
		},
	},
	{
		ID:   "minimal",
		Name: "Minimal",
		Styles: StyleBundle{
			Container:    "font-family: Helvetica, Arial, sans-serif; color: #333; padding: 40px;",
			Header:       "padding-bottom: 8px;",
			Name:         "font-size: 22px; font-weight: 400;",
			Contact:      "font-size: 11px; color: #666;",
			SectionTitle: "font-size: 12px; font-weight: 600; letter-spacing: 2px; text-transform: uppercase;",
			Accent:       "#333333",
		},
	},
	{
		ID:   "professional",
		Name: "Professional",
		Styles: StyleBundle{
			Container:    "font-family: 'Times New Roman', serif; color: #102a43; padding: 30px;",
			Header:       "border-bottom: 3px double #102a43; padding-bottom: 10px;",
			Name:         "font-size: 24px; font-weight: bold;",
			Contact:      "font-size: 12px; color: #334e68;",
			SectionTitle: "font-size: 14px; font-weight: bold; color: #102a43;",
			Accent:       "#102a43",
		},
	},
	{
		ID:   "creative",
		Name: "Creative",
		Styles: StyleBundle{
			Container:    "font-family: Verdana, sans-serif; color: #2d2d2d; padding: 26px;",
			Header:       "background: #7c3aed; color: #fff; padding: 18px; border-radius: 6px;",
			Name:         "font-size: 27px; font-weight: 700; color: #fff;",
			Contact:      "font-size: 12px; color: #ede9fe;",
			SectionTitle: "font-size: 13px; font-weight: 700; color: #7c3aed;",
			Accent:       "#7c3aed",
		},
	},
	{
		ID:   "warehouse",
		Name: "Warehouse & Trades",
		Styles: StyleBundle{
			Container:    "font-family: Arial, sans-serif; color: #1f2937; padding: 30px;",
			Header:       "border-bottom: 4px solid #d97706; padding-bottom: 10px;",
			Name:         "font-size: 25px; font-weight: bold;",
			Contact:      "font-size: 12px; color: #4b5563;",
			SectionTitle: "font-size: 14px; font-weight: bold; color: #d97706; text-transform: uppercase;",
			Accent:       "#d97706",
		},
	},
}

var catalogByID = func() map[string]*Template {
	m := make(map[string]*Template, len(catalog))
	for i := range catalog {
		m[catalog[i].ID] = &catalog[i]
	}
	return m
}()

// Catalog returns all templates in their fixed display order.
func Catalog() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the template for id, falling back to the classic template
// when the id is unknown. It never fails.
func Lookup(id string) *Template {
	if t, ok := catalogByID[id]; ok {
		return t
	}
	return catalogByID[DefaultTemplateID]
}
