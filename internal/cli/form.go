package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

// Form styles
var (
	formSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	formLabelStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(22)
	formErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// FormModel - Interactive parameter form
// =============================================================================

type itemKind int

const (
	itemText itemKind = iota
	itemToggle
	itemButton
)

// Text field indices; the order matches the rows of the form.
const (
	fieldCount = iota
	fieldXMin
	fieldXMax
	fieldYMin
	fieldYMax
	fieldDensity
	fieldOutput
	fieldGrid
	fieldFirstKind
)

type formItem struct {
	label string
	kind  itemKind
	value string
	on    bool
	fig   figure.Kind
}

// FormModel is the bubbletea model for the parameter form.
type FormModel struct {
	items  []formItem
	cursor int
	base   pipeline.Options

	// Err is the validation message shown under the form.
	Err string

	// Submitted is set when the form was confirmed with valid values;
	// Options and Output then hold them.
	Submitted bool
	Options   pipeline.Options
	Output    string
}

// NewFormModel creates a form prefilled from opts and the output name.
func NewFormModel(opts pipeline.Options, output string) FormModel {
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	items := []formItem{
		fieldCount:   {label: "Number of figures", value: strconv.Itoa(opts.Count)},
		fieldXMin:    {label: "X min", value: num(opts.Viewport.XMin)},
		fieldXMax:    {label: "X max", value: num(opts.Viewport.XMax)},
		fieldYMin:    {label: "Y min", value: num(opts.Viewport.YMin)},
		fieldYMax:    {label: "Y max", value: num(opts.Viewport.YMax)},
		fieldDensity: {label: "Density (0.0-1.0)", value: num(opts.Density)},
		fieldOutput:  {label: "Save as", value: output},
		fieldGrid:    {label: "Show coordinate grid", kind: itemToggle, on: opts.ShowGrid},
	}
	selected := make(map[figure.Kind]bool, len(opts.Kinds))
	for _, k := range opts.Kinds {
		selected[k] = true
	}
	for _, k := range figure.All {
		items = append(items, formItem{label: k.Label(), kind: itemToggle, on: selected[k], fig: k})
	}
	items = append(items, formItem{label: "Draw", kind: itemButton})

	return FormModel{items: items, base: opts}
}

func (m FormModel) Init() tea.Cmd {
	return nil
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	item := &m.items[m.cursor]

	switch key.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "shift+tab":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case "down", "tab":
		m.cursor = (m.cursor + 1) % len(m.items)
	case " ":
		if item.kind == itemToggle {
			item.on = !item.on
		}
	case "enter":
		switch item.kind {
		case itemButton:
			if m.submit() {
				return m, tea.Quit
			}
		case itemToggle:
			item.on = !item.on
		default:
			m.cursor = (m.cursor + 1) % len(m.items)
		}
	case "backspace":
		if item.kind == itemText && item.value != "" {
			r := []rune(item.value)
			item.value = string(r[:len(r)-1])
		}
	default:
		if item.kind == itemText && key.Type == tea.KeyRunes {
			item.value += string(key.Runes)
		}
	}
	return m, nil
}

// submit validates the form. On failure it sets Err and keeps the form
// open.
func (m *FormModel) submit() bool {
	opts, output, err := m.values()
	if err != nil {
		m.Err = errors.UserMessage(err)
		return false
	}
	m.Err = ""
	m.Submitted = true
	m.Options = opts
	m.Output = output
	return true
}

// values parses and validates the fields in form order.
func (m FormModel) values() (pipeline.Options, string, error) {
	opts := m.base
	count, err := strconv.Atoi(strings.TrimSpace(m.items[fieldCount].value))
	if err != nil {
		return opts, "", errors.New(errors.ErrCodeInvalidCount, "check the number format: %s must be a whole number", strings.ToLower(m.items[fieldCount].label))
	}
	opts.Count = count

	floats := []struct {
		field int
		dst   *float64
	}{
		{fieldXMin, &opts.Viewport.XMin},
		{fieldXMax, &opts.Viewport.XMax},
		{fieldYMin, &opts.Viewport.YMin},
		{fieldYMax, &opts.Viewport.YMax},
		{fieldDensity, &opts.Density},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(m.items[f.field].value), 64)
		if err != nil {
			return opts, "", errors.New(errors.ErrCodeInvalidInput, "check the number format: %s must be a number", m.items[f.field].label)
		}
		*f.dst = v
	}

	opts.ShowGrid = m.items[fieldGrid].on
	opts.Kinds = nil
	for _, it := range m.items[fieldFirstKind:] {
		if it.kind == itemToggle && it.on {
			opts.Kinds = append(opts.Kinds, it.fig)
		}
	}

	if err := opts.Request().Validate(); err != nil {
		return opts, "", err
	}
	output := strings.TrimSpace(m.items[fieldOutput].value)
	if output == "" {
		output = pipeline.DefaultFileName
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return opts, "", err
	}
	return opts, output, nil
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Generation Parameters"))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  esc quit"))
	b.WriteString("\n\n")

	for i, it := range m.items {
		cursor := "  "
		style := formNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = formSelectedStyle
		}
		if i == fieldFirstKind {
			b.WriteString("\n" + formLabelStyle.Render("  Figure types") + "\n")
		}

		var line string
		switch it.kind {
		case itemText:
			value := it.value
			if i == m.cursor {
				value += "_"
			}
			line = formLabelStyle.Render(it.label) + " " + style.Render(value)
		case itemToggle:
			box := "[ ]"
			if it.on {
				box = "[x]"
			}
			line = style.Render(box + " " + it.label)
		case itemButton:
			b.WriteString("\n")
			line = style.Render("[ " + it.label + " ]")
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.Err != "" {
		b.WriteString("\n" + formErrorStyle.Render(iconError+" "+m.Err) + "\n")
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// formCommand creates the interactive form command.
func (c *CLI) formCommand() *cobra.Command {
	var out renderOpts

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in the drawing parameters interactively, then render",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.defaultOptions()
			if cmd.Flags().Changed("format") {
				opts.Formats = parseFormats(out.formats)
			}
			return c.runForm(cmd.Context(), opts, out)
		},
	}

	cmd.Flags().StringVarP(&out.formats, "format", "f", pipeline.FormatPNG, "output format(s): png, svg, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&out.noCache, "no-cache", false, "disable the artifact cache")
	registerListCompletions(cmd)

	return cmd
}

func (c *CLI) runForm(ctx context.Context, opts pipeline.Options, out renderOpts) error {
	output := c.cfg.Render.Output
	if len(opts.Formats) == 1 {
		output = errors.EnsureExtension(output, opts.Formats[0])
	}

	final, err := tea.NewProgram(NewFormModel(opts, output), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("form: %w", err)
	}
	m := final.(FormModel)
	if !m.Submitted {
		printInfo("Cancelled")
		return nil
	}

	out.output = m.Output
	return c.runRender(ctx, m.Options, out)
}
