// Package form provides the stock item entry form for the TUI.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ims-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ims-cli/internal/core/domain"
	"github.com/custodia-labs/ims-cli/internal/core/ports/driving"
)

// StockFormID keys the autosaved draft of the stock item form.
const StockFormID = "new-stock-item"

// ErrNoFormService indicates that no form service was provided.
var ErrNoFormService = errors.New("form service not available")

// NewStockForm returns the definition of the stock item form.
func NewStockForm() *domain.Form {
	return &domain.Form{
		ID:       StockFormID,
		Title:    "New stock item",
		Autosave: true,
		Fields: []domain.Field{
			{Name: "name", Label: "Name", Type: domain.FieldText, Required: true},
			{Name: "sku", Label: "SKU", Type: domain.FieldText, Required: true},
			{Name: "quantity", Label: "Quantity", Type: domain.FieldNumber},
			{Name: "received", Label: "Received", Type: domain.FieldDate},
			{Name: "supplier", Label: "Supplier", Type: domain.FieldText},
			{Name: "notes", Label: "Notes", Type: domain.FieldTextarea},
			{Name: "pin", Label: "Admin PIN", Type: domain.FieldPassword},
		},
	}
}

// View is the form view.
type View struct {
	styles      *styles.Styles
	formService driving.FormService

	form       *domain.Form
	inputs     []textinput.Model
	focusIndex int
	submitting bool
	width      int
	height     int
	ready      bool
	err        error
}

// NewView creates a form view for form. A nil form uses NewStockForm.
func NewView(s *styles.Styles, formService driving.FormService, form *domain.Form) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if form == nil {
		form = NewStockForm()
	}

	return &View{
		styles:      s,
		formService: formService,
		form:        form,
		width:       80,
		height:      24,
	}
}

// Init restores any draft and focuses the first field.
func (v *View) Init() tea.Cmd {
	if v.formService != nil {
		if err := v.formService.Prepare(v.form); err != nil {
			v.err = err
		}
	}
	v.initInputs()
	return v.updateFocus()
}

// initInputs builds one text input per field from the form values.
func (v *View) initInputs() {
	v.inputs = make([]textinput.Model, len(v.form.Fields))
	for i := range v.form.Fields {
		field := &v.form.Fields[i]
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = v.inputWidth()
		switch field.Type {
		case domain.FieldPassword:
			ti.EchoMode = textinput.EchoPassword
		case domain.FieldDate:
			ti.Placeholder = domain.DatePlaceholder
		case domain.FieldNumber:
			ti.Placeholder = "0"
		}
		ti.SetValue(field.Value)
		v.inputs[i] = ti
	}
	v.focusIndex = 0
}

func (v *View) inputWidth() int {
	w := v.width - 20
	if w < 10 {
		w = 10
	}
	return w
}

// Update handles messages for the form view.
//
//nolint:gocritic // evalOrder: bubbletea pattern returns cmd from method call
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		return v.handleKeyMsg(msg)

	case messages.FormSubmitted:
		if msg.FormID != v.form.ID {
			return v, nil
		}
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, notify("Save failed: "+msg.Err.Error(), domain.NotificationError)
		}
		v.err = nil
		v.form.Reset()
		v.initInputs()
		name := msg.Values["name"]
		return v, tea.Batch(v.updateFocus(), notify(fmt.Sprintf("Saved %s", name), domain.NotificationSuccess))

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	if len(v.inputs) == 0 {
		return v, nil
	}
	var cmd tea.Cmd
	v.inputs[v.focusIndex], cmd = v.inputs[v.focusIndex].Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if len(v.inputs) == 0 {
		return v, nil
	}

	switch msg.String() {
	case "tab", "down":
		v.blurCurrent()
		v.focusIndex = (v.focusIndex + 1) % len(v.inputs)
		return v, v.updateFocus()
	case "shift+tab", "up":
		v.blurCurrent()
		v.focusIndex = (v.focusIndex - 1 + len(v.inputs)) % len(v.inputs)
		return v, v.updateFocus()
	case "ctrl+s", "enter":
		return v, v.submit()
	}

	before := v.inputs[v.focusIndex].Value()
	var cmd tea.Cmd
	v.inputs[v.focusIndex], cmd = v.inputs[v.focusIndex].Update(msg)
	after := v.inputs[v.focusIndex].Value()
	if after != before {
		v.form.Input(v.form.Fields[v.focusIndex].Name, after)
		if v.formService != nil {
			v.formService.Changed(v.form)
		}
	}
	return v, cmd
}

// blurCurrent validates the field losing focus.
func (v *View) blurCurrent() {
	v.form.Blur(v.form.Fields[v.focusIndex].Name)
}

// updateFocus focuses the current input and blurs the rest.
func (v *View) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range v.inputs {
		if i == v.focusIndex {
			cmd = v.inputs[i].Focus()
			continue
		}
		v.inputs[i].Blur()
	}
	return cmd
}

// submit validates the form. A rejected form stays as is with its invalid
// fields marked; the form service raises the error notification.
func (v *View) submit() tea.Cmd {
	if v.formService == nil {
		v.err = ErrNoFormService
		return nil
	}

	ok, err := v.formService.Submit(v.form)
	if err != nil {
		v.err = err
		return nil
	}
	if !ok {
		return nil
	}

	v.submitting = true
	formID := v.form.ID
	values := v.form.Values()
	return func() tea.Msg {
		return messages.FormSubmitted{FormID: formID, Values: values}
	}
}

func notify(message string, typ domain.NotificationType) tea.Cmd {
	return func() tea.Msg {
		return messages.Notify{Message: message, Type: typ}
	}
}

// View renders the form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.form.Title))
	b.WriteString("\n\n")

	for i := range v.form.Fields {
		b.WriteString(v.renderField(i))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.submitting {
		b.WriteString(v.styles.Muted.Render("[ Processing... ]"))
	} else {
		b.WriteString(v.styles.Selected.Render("[ Save ]"))
	}

	return b.String()
}

// renderField renders a labelled input. Required fields carry an asterisk.
func (v *View) renderField(i int) string {
	field := &v.form.Fields[i]

	label := field.Label
	if field.Required {
		label += "*"
	}
	label = fmt.Sprintf("%-12s", label)
	if i == v.focusIndex {
		label = v.styles.Selected.Render(label)
	} else {
		label = v.styles.Normal.Render(label)
	}

	input := ""
	if i < len(v.inputs) {
		input = v.inputs[i].View()
	}
	if field.Invalid {
		return label + " " + v.styles.InvalidField.Render(input) + " " + v.styles.Error.Render("required")
	}
	return label + " " + v.styles.InputField.Render(input)
}

// SetStyles replaces the styles, for theme changes.
func (v *View) SetStyles(s *styles.Styles) {
	v.styles = s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for i := range v.inputs {
		v.inputs[i].Width = v.inputWidth()
	}
}

// Form returns the form being edited.
func (v *View) Form() *domain.Form {
	return v.form
}

// FocusIndex returns the index of the focused field.
func (v *View) FocusIndex() int {
	return v.focusIndex
}

// Submitting reports whether a valid form is being processed.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
