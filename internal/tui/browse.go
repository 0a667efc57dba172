// Package tui renders the interactive course browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/coursekit/internal/lms"
	"github.com/wolfeidau/coursekit/internal/search"
)

// Controller is the filter state the browser drives.
type Controller interface {
	Start(ctx context.Context)
	SetQuery(q string)
	SetCategory(id int64)
	SetDifficulty(d string)
	SetSort(sort string)
	Clear()
	Filters() lms.CourseFilters
}

// ResultMsg carries a finished course search into the update loop.
type ResultMsg search.Result

type keyMap struct {
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Difficulty key.Binding
	Sort       key.Binding
	Category   key.Binding
	Clear      key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
	Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
	Difficulty: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "difficulty")),
	Sort:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sort")),
	Category:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "category")),
	Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filters")),
}

// BrowseModel is the bubbletea model for searching courses.
type BrowseModel struct {
	ctx        context.Context
	ctrl       Controller
	categories []lms.Category

	input   textinput.Model
	courses []lms.Course
	err     error
	loading bool
	cursor  int

	width    int
	quitting bool
	styles   Styles
}

// NewBrowseModel creates a browser driving ctrl. Categories feed the
// category filter cycle and may be empty.
func NewBrowseModel(ctx context.Context, ctrl Controller, categories []lms.Category) BrowseModel {
	input := textinput.New()
	input.Placeholder = "search courses"
	input.Prompt = "/ "
	input.Focus()

	return BrowseModel{
		ctx:        ctx,
		ctrl:       ctrl,
		categories: categories,
		input:      input,
		loading:    true,
		styles:     DefaultStyles(),
	}
}

// Init starts the first search right away, outside the debounce.
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		m.ctrl.Start(m.ctx)
		return nil
	})
}

// Update handles keys and search results.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ResultMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.courses = msg.Courses
		}
		if m.cursor >= len(m.courses) {
			m.cursor = max(len(m.courses)-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.courses)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Difficulty):
		m.ctrl.SetDifficulty(next(append([]string{""}, lms.Difficulties...), m.ctrl.Filters().Difficulty))
		m.loading = true
		return m, nil

	case key.Matches(msg, keys.Sort):
		m.ctrl.SetSort(next(lms.Sorts, m.ctrl.Filters().Sort))
		m.loading = true
		return m, nil

	case key.Matches(msg, keys.Category):
		ids := make([]int64, 0, len(m.categories)+1)
		ids = append(ids, 0)
		for _, c := range m.categories {
			ids = append(ids, c.ID)
		}
		m.ctrl.SetCategory(next(ids, m.ctrl.Filters().Category))
		m.loading = true
		return m, nil

	case key.Matches(msg, keys.Clear):
		m.input.SetValue("")
		m.ctrl.Clear()
		m.loading = true
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.ctrl.Filters().Search {
		m.ctrl.SetQuery(q)
		m.loading = true
	}

	return m, cmd
}

// next returns the element after cur, wrapping around. Unknown values
// restart at the first element.
func next[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// View renders the browser.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Courses"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Filter.Render(m.describeFilters()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	case len(m.courses) == 0 && m.loading:
		b.WriteString(m.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	case len(m.courses) == 0:
		b.WriteString(m.styles.Muted.Render("No courses match these filters."))
		b.WriteString("\n")
	}

	for i, c := range m.courses {
		line := fmt.Sprintf("%s  %s · $%s · %d students", c.Title, c.Difficulty, c.Price, c.StudentsCount)
		if i == m.cursor {
			b.WriteString(m.styles.Highlighted.Render(line))
		} else {
			b.WriteString(m.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}

	if m.cursor < len(m.courses) {
		c := m.courses[m.cursor]
		detail := fmt.Sprintf("%s\nby %s · %s · %dh\n\n%s",
			c.Title, c.LecturerName, orAny(c.CategoryName), c.DurationHours, c.Description)
		b.WriteString(m.styles.Detail.Render(detail))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("type to search • tab difficulty • ctrl+s sort • ctrl+g category • esc clear • ctrl+c quit"))

	return b.String()
}

func (m BrowseModel) describeFilters() string {
	f := m.ctrl.Filters()

	category := "any"
	for _, c := range m.categories {
		if c.ID == f.Category {
			category = c.Name
		}
	}

	return fmt.Sprintf("difficulty: %s · category: %s · sort: %s", orAny(f.Difficulty), category, f.Sort)
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

// Run opens the browser on the terminal until the user quits.
func Run(ctx context.Context, api *lms.Client) error {
	categories, err := api.Categories(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load categories, category filter disabled")
	}

	var program *tea.Program
	ctrl := search.New(api.SearchCourses, func(r search.Result) {
		program.Send(ResultMsg(r))
	})
	defer ctrl.Close()

	program = tea.NewProgram(NewBrowseModel(ctx, ctrl, categories), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}

	return nil
}
