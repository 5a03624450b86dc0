package uischema

// Store keeps the parsed operations from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	operations map[string]Operation
}

// Operation describes the UI schema overrides for a specific OpenAPI operation.
type Operation struct {
	ID       string
	Source   string
	Form     FormConfig
	Sections []SectionConfig
	Fields   map[string]FieldConfig
}

// FormConfig captures page-level copy plus action buttons.
type FormConfig struct {
	Title    string            `json:"title" yaml:"title"`
	Subtitle string            `json:"subtitle" yaml:"subtitle"`
	Brand    BrandConfig       `json:"brand" yaml:"brand"`
	Progress ProgressConfig    `json:"progress" yaml:"progress"`
	Location LocationConfig    `json:"location" yaml:"location"`
	Footer   FooterConfig      `json:"footer" yaml:"footer"`
	Actions  []ActionConfig    `json:"actions" yaml:"actions"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
	UIHints  map[string]string `json:"uiHints" yaml:"uiHints"`
}

// BrandConfig is the header shown above the form.
type BrandConfig struct {
	Name    string `json:"name" yaml:"name"`
	Tagline string `json:"tagline" yaml:"tagline"`
	Icon    string `json:"icon" yaml:"icon"`
}

// ProgressConfig drives the step indicator.
type ProgressConfig struct {
	Step  int `json:"step" yaml:"step"`
	Steps int `json:"steps" yaml:"steps"`
}

// LocationConfig carries the copy of the location picker placeholder.
type LocationConfig struct {
	Label      string `json:"label" yaml:"label"`
	Prompt     string `json:"prompt" yaml:"prompt"`
	HelpText   string `json:"helpText" yaml:"helpText"`
	MarkedText string `json:"markedText" yaml:"markedText"`
	ClearLabel string `json:"clearLabel" yaml:"clearLabel"`
	Icon       string `json:"icon" yaml:"icon"`
}

// FooterConfig is the support line under the form.
type FooterConfig struct {
	Text  string `json:"text" yaml:"text"`
	Email string `json:"email" yaml:"email"`
}

// ActionConfig serialises call-to-action buttons rendered alongside the form.
type ActionConfig struct {
	Kind   string `json:"kind" yaml:"kind"`
	Label  string `json:"label" yaml:"label"`
	Href   string `json:"href,omitempty" yaml:"href,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// SectionConfig groups related fields into fieldsets.
type SectionConfig struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title,omitempty" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description"`
	Order       *int   `json:"order,omitempty" yaml:"order,omitempty"`
	Columns     int    `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// FieldConfig customises how a field is rendered.
type FieldConfig struct {
	Section     string            `json:"section" yaml:"section"`
	Order       *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Icon        string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	CSSClass    string            `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
