package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/gdg-garage/mission-registration/internal/form"
	"github.com/gdg-garage/mission-registration/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageRegister = "register.html"
	pageClosed   = "closed.html"
	pageDone     = "done.html"
	pageNotFound = "notfound.html"
	pageError    = "error.html"

	// errorsField carries the names of fields that showed an error, so a
	// partial re-render keeps the messages the user has not addressed yet.
	errorsField = "_errors"
	actionField = "action"

	actionToggleAllDays = "toggle_all_days"

	displayDateLayout = "02/01/2006"
)

var pages = parsePages(pageRegister, pageClosed, pageDone, pageNotFound, pageError)

func parsePages(names ...string) map[string]*template.Template {
	base := template.Must(template.ParseFS(templatesFS, "templates/layout.html", "templates/form.html"))
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.Must(base.Clone()).ParseFS(templatesFS, "templates/"+name))
	}
	return out
}

var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

type pageView struct {
	SiteName string
	Title    string
	Mission  *missionHeader
	Form     *formView
	Done     *doneView
	Message  string
}

type missionHeader struct {
	ID          int64
	Title       string
	Description template.HTML
	Dates       string
	Location    string
	Partners    []string
	FormURL     string
}

type formView struct {
	Action          string
	FieldsURL       string
	Fields          []fieldView
	FormError       string
	CSRFField       template.HTML
	Fee             string
	FeeApplies      bool
	AllDaysSelected bool
	ErrorFields     []string
}

type fieldView struct {
	Name      string
	Label     string
	Kind      string
	Required  bool
	Value     string
	Checked   bool
	Error     string
	Autofocus bool
	Options   []optionView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

type doneView struct {
	AlreadyRegistered bool
	FirstName         string
}

func registrationURL(id int64) string {
	return "/registration/" + strconv.FormatInt(id, 10)
}

// DateRange formats the mission dates for the page header, for example
// "07/12/2026 – 13/12/2026".
func DateRange(m models.MissionEvent) string {
	start := m.StartDate.Time().Format(displayDateLayout)
	last := m.LastDay()
	if last.Equal(m.StartDate) {
		return start
	}
	return fmt.Sprintf("%s – %s", start, last.Time().Format(displayDateLayout))
}

func newMissionHeader(m models.MissionEvent) *missionHeader {
	return &missionHeader{
		ID:          m.ID,
		Title:       m.Title,
		Description: renderMarkdown(m.Description),
		Dates:       DateRange(m),
		Location:    m.LocationName,
		Partners:    m.PartneringOrganization,
		FormURL:     registrationURL(m.ID),
	}
}

// newFormView renders the visible fields of f. autofocus names the field that
// receives focus, usually the first one that failed validation.
func newFormView(r *http.Request, f *form.Form, autofocus string) *formView {
	id := f.Mission().ID
	v := &formView{
		Action:          registrationURL(id),
		FieldsURL:       registrationURL(id) + "/fields",
		FormError:       f.FormError(),
		CSRFField:       csrf.TemplateField(r),
		Fee:             form.FormatFee(f.DisplayedFee()),
		FeeApplies:      f.FeeApplies(),
		AllDaysSelected: f.AllDaysSelected(),
	}
	for _, fe := range f.Errors() {
		v.ErrorFields = append(v.ErrorFields, fe.Field)
	}

	for _, field := range f.VisibleFields() {
		fv := fieldView{
			Name:      field.Name,
			Label:     field.Label,
			Kind:      string(field.Kind),
			Required:  field.Required,
			Value:     f.Display(field.Name),
			Error:     f.Error(field.Name),
			Autofocus: field.Name == autofocus,
		}
		switch field.Kind {
		case form.KindCheckbox:
			fv.Checked = f.Value(field.Name) == true
		case form.KindSelect:
			for _, o := range field.Options {
				fv.Options = append(fv.Options, optionView{Value: o.Value, Label: o.Label, Selected: o.Value == fv.Value})
			}
		case form.KindDaysMultiSelect:
			for _, o := range field.Options {
				d, err := models.ParseDate(o.Value)
				fv.Options = append(fv.Options, optionView{Value: o.Value, Label: o.Label, Selected: err == nil && f.DaySelected(d)})
			}
		case form.KindDate:
			if d, err := models.ParseDate(fv.Value); err == nil {
				fv.Value = d.Time().Format(displayDateLayout)
			}
		}
		v.Fields = append(v.Fields, fv)
	}
	return v
}

func (h *RegistrationHandler) render(w http.ResponseWriter, status int, page string, view pageView) {
	view.SiteName = h.siteName
	if view.Title == "" {
		view.Title = h.siteName
	}
	h.execute(w, status, page, "layout", view)
}

// renderForm writes only the form fragment swapped in by htmx.
func (h *RegistrationHandler) renderForm(w http.ResponseWriter, status int, view *formView) {
	h.execute(w, status, pageRegister, "form", view)
}

func (h *RegistrationHandler) execute(w http.ResponseWriter, status int, page, name string, data any) {
	var buf bytes.Buffer
	if err := pages[page].ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error().Err(err).Str("template", page).Msg("render failed")
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}
