package vanilla

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-stationreg/pkg/model"
	"github.com/goliatone/go-stationreg/pkg/render"
	"github.com/goliatone/go-stationreg/pkg/uischema"
)

type pageView struct {
	FormID        string        `json:"formID"`
	Title         string        `json:"title"`
	Subtitle      string        `json:"subtitle,omitempty"`
	Brand         brandView     `json:"brand"`
	Progress      string        `json:"progress,omitempty"`
	Steps         []stepView    `json:"steps,omitempty"`
	Action        string        `json:"action"`
	Method        string        `json:"method"`
	Sections      []sectionView `json:"sections"`
	Location      locationView  `json:"location"`
	Actions       []actionView  `json:"actions"`
	Footer        footerView    `json:"footer"`
	Hidden        []hiddenView  `json:"hidden,omitempty"`
	FormErrors    []string      `json:"formErrors,omitempty"`
	ErrorCount    string        `json:"errorCount,omitempty"`
	Theme         themeView     `json:"theme"`
	StylesheetURL string        `json:"stylesheetURL,omitempty"`
	InlineCSS     string        `json:"inlineCSS,omitempty"`
	ScriptURL     string        `json:"scriptURL,omitempty"`
}

type brandView struct {
	Name    string `json:"name,omitempty"`
	Tagline string `json:"tagline,omitempty"`
	Icon    string `json:"icon,omitempty"`
}

type stepView struct {
	Number string `json:"number"`
	Active bool   `json:"active"`
}

type sectionView struct {
	ID      string      `json:"id,omitempty"`
	Title   string      `json:"title,omitempty"`
	Columns string      `json:"columns"`
	Fields  []fieldView `json:"fields"`
}

type fieldView struct {
	Name         string       `json:"name"`
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	Widget       string       `json:"widget"`
	InputType    string       `json:"inputType"`
	Placeholder  string       `json:"placeholder,omitempty"`
	Autocomplete string       `json:"autocomplete,omitempty"`
	Rows         string       `json:"rows,omitempty"`
	Value        string       `json:"value"`
	HelpText     string       `json:"helpText,omitempty"`
	HelpID       string       `json:"helpID"`
	ErrorID      string       `json:"errorID"`
	DescribedBy  string       `json:"describedBy"`
	CSSClass     string       `json:"cssClass,omitempty"`
	Required     bool         `json:"required"`
	Invalid      bool         `json:"invalid"`
	Errors       []string     `json:"errors,omitempty"`
	EmptyOption  string       `json:"emptyOption,omitempty"`
	Options      []optionView `json:"options,omitempty"`
	ValidateURL  string       `json:"validateURL,omitempty"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type locationView struct {
	Enabled      bool   `json:"enabled"`
	Label        string `json:"label"`
	Prompt       string `json:"prompt"`
	HelpText     string `json:"helpText,omitempty"`
	MarkedText   string `json:"markedText"`
	ClearLabel   string `json:"clearLabel"`
	Icon         string `json:"icon,omitempty"`
	Marked       bool   `json:"marked"`
	Coordinates  string `json:"coordinates,omitempty"`
	ToggleAction string `json:"toggleAction,omitempty"`
}

type actionView struct {
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Type   string `json:"type"`
	Href   string `json:"href,omitempty"`
	Method string `json:"method,omitempty"`
	Icon   string `json:"icon,omitempty"`
}

type footerView struct {
	Text  string `json:"text,omitempty"`
	Email string `json:"email,omitempty"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type themeView struct {
	Name       string   `json:"name,omitempty"`
	Variant    string   `json:"variant,omitempty"`
	CSSVars    []cssVar `json:"cssVars,omitempty"`
	Stylesheet string   `json:"stylesheet,omitempty"`
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r *Renderer) buildPage(form model.FormModel, opts render.RenderOptions) (pageView, error) {
	hints := form.UIHints
	page := pageView{
		FormID:     "sr-" + form.OperationID,
		Title:      firstNonEmpty(hints["layout.title"], form.Summary, form.OperationID),
		Subtitle:   firstNonEmpty(hints["layout.subtitle"], form.Description),
		Action:     firstNonEmpty(opts.Action, form.Endpoint),
		Method:     "post",
		FormErrors: render.MergeFormErrors(opts.FormErrors),
		Brand: brandView{
			Name:    hints["brand.name"],
			Tagline: hints["brand.tagline"],
			Icon:    hints["brand.icon"],
		},
		Footer: footerView{Text: hints["footer.text"], Email: hints["footer.email"]},
	}
	if strings.EqualFold(form.Method, "get") {
		page.Method = "get"
	}

	if steps, err := strconv.Atoi(hints["progress.steps"]); err == nil && steps > 0 {
		current, _ := strconv.Atoi(hints["progress.step"])
		page.Progress = fmt.Sprintf("Step %d of %d", current, steps)
		for i := 1; i <= steps; i++ {
			page.Steps = append(page.Steps, stepView{Number: strconv.Itoa(i), Active: i == current})
		}
	}

	sections, err := r.buildSections(form, opts)
	if err != nil {
		return pageView{}, err
	}
	page.Sections = sections

	errorCount := 0
	for _, section := range sections {
		for _, field := range section.Fields {
			if field.Invalid {
				errorCount++
			}
		}
	}
	if errorCount > 0 {
		page.ErrorCount = strconv.Itoa(errorCount)
	}

	actions, err := buildActions(form)
	if err != nil {
		return pageView{}, err
	}
	page.Actions = actions
	page.Location = buildLocation(hints, opts.Location)

	for _, hidden := range render.SortedHiddenFields(opts.Hidden) {
		page.Hidden = append(page.Hidden, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}
	page.Theme = buildTheme(opts.Theme)

	if r.assetsURL != "" {
		page.StylesheetURL = r.assetsURL + "/" + StylesheetName
		page.ScriptURL = r.assetsURL + "/" + RuntimeScriptName
	} else {
		page.InlineCSS = r.stylesheet
	}
	return page, nil
}

func (r *Renderer) buildSections(form model.FormModel, opts render.RenderOptions) ([]sectionView, error) {
	configs, err := uischema.Sections(form)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	sections := make([]sectionView, 0, len(configs)+1)
	index := make(map[string]int, len(configs))
	for _, cfg := range configs {
		index[cfg.ID] = len(sections)
		columns := cfg.Columns
		if columns <= 0 {
			columns = 1
		}
		sections = append(sections, sectionView{ID: cfg.ID, Title: cfg.Title, Columns: strconv.Itoa(columns)})
	}

	var loose []fieldView
	for _, field := range form.Fields {
		view := r.buildField(field, opts)
		if pos, ok := index[uischema.FieldSection(field)]; ok {
			sections[pos].Fields = append(sections[pos].Fields, view)
			continue
		}
		loose = append(loose, view)
	}
	if len(loose) > 0 {
		sections = append(sections, sectionView{Columns: "1", Fields: loose})
	}

	out := sections[:0]
	for _, section := range sections {
		if len(section.Fields) > 0 {
			out = append(out, section)
		}
	}
	return out, nil
}

func (r *Renderer) buildField(field model.Field, opts render.RenderOptions) fieldView {
	id := "sr-field-" + field.Name
	view := fieldView{
		Name:         field.Name,
		ID:           id,
		Label:        firstNonEmpty(field.Label, field.Name),
		Widget:       field.Widget(),
		InputType:    firstNonEmpty(field.UIHints["inputType"], "text"),
		Placeholder:  field.Placeholder,
		Autocomplete: field.UIHints["autocomplete"],
		Rows:         firstNonEmpty(field.UIHints["rows"], "3"),
		Value:        opts.Values[field.Name],
		HelpText:     firstNonEmpty(field.UIHints["helpText"], field.Description),
		HelpID:       id + "-help",
		ErrorID:      id + "-error",
		CSSClass:     field.UIHints["cssClass"],
		Required:     field.Required,
		Errors:       render.MergeFormErrors(opts.Errors[field.Name]),
	}
	view.Invalid = len(view.Errors) > 0

	describedBy := []string{view.ErrorID}
	if view.HelpText != "" {
		describedBy = append([]string{view.HelpID}, describedBy...)
	}
	view.DescribedBy = strings.Join(describedBy, " ")

	if r.validateURL != "" {
		view.ValidateURL = strings.ReplaceAll(r.validateURL, "{field}", field.Name)
	}

	if view.Widget == "select" {
		view.EmptyOption = firstNonEmpty(field.Placeholder, "Select "+strings.ToLower(view.Label))
		for _, option := range field.Enum {
			view.Options = append(view.Options, optionView{
				Value:    option,
				Label:    option,
				Selected: option == view.Value,
			})
		}
	}
	return view
}

func buildActions(form model.FormModel) ([]actionView, error) {
	configs, err := uischema.Actions(form)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	if len(configs) == 0 {
		configs = []uischema.ActionConfig{{
			Kind:  "primary",
			Label: firstNonEmpty(form.UIHints["submitLabel"], "Submit"),
			Type:  "submit",
		}}
	}

	actions := make([]actionView, 0, len(configs))
	for _, cfg := range configs {
		actions = append(actions, actionView{
			Kind:   firstNonEmpty(cfg.Kind, "secondary"),
			Label:  cfg.Label,
			Type:   firstNonEmpty(cfg.Type, "button"),
			Href:   cfg.Href,
			Method: strings.ToLower(cfg.Method),
			Icon:   cfg.Icon,
		})
	}
	return actions, nil
}

func buildLocation(hints map[string]string, opts render.LocationOptions) locationView {
	view := locationView{
		Label:        firstNonEmpty(hints["location.label"], "Location"),
		Prompt:       firstNonEmpty(hints["location.prompt"], "Click to set location on map"),
		HelpText:     hints["location.helpText"],
		MarkedText:   firstNonEmpty(hints["location.markedText"], "Location marked"),
		ClearLabel:   firstNonEmpty(hints["location.clearLabel"], "Clear location"),
		Icon:         hints["location.icon"],
		Marked:       opts.Marked,
		Coordinates:  opts.Coordinates,
		ToggleAction: opts.ToggleAction,
	}
	view.Enabled = hints["location.label"] != "" || opts.ToggleAction != "" || opts.Marked
	return view
}

func buildTheme(theme *render.ThemeConfig) themeView {
	if theme == nil {
		return themeView{}
	}
	view := themeView{Name: theme.Name, Variant: theme.Variant, Stylesheet: theme.Assets[ThemeStylesheetAsset]}
	names := make([]string, 0, len(theme.CSSVars))
	for name := range theme.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		view.CSSVars = append(view.CSSVars, cssVar{Name: name, Value: theme.CSSVars[name]})
	}
	return view
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
