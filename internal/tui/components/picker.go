package components

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tablemap/internal/tui/styles"
)

// AllLabel is the label of the option that clears a filter
const AllLabel = "All"

// PickerOption is one choice in a Picker. An empty ID is the "All" choice.
type PickerOption struct {
	ID    string
	Label string
}

// pickerItem implements list.DefaultItem
type pickerItem struct {
	option PickerOption
	active bool
}

func (i pickerItem) FilterValue() string { return i.option.Label }

func (i pickerItem) Title() string {
	if i.active {
		return "✓ " + i.option.Label
	}
	return "  " + i.option.Label
}

func (i pickerItem) Description() string { return "" }

const pickerMaxHeight = 20

// Picker is a modal single-choice list used for the continent and country
// filters.
type Picker struct {
	list    list.Model
	visible bool
	width   int
	height  int
}

// NewPicker creates a hidden picker
func NewPicker() Picker {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	delegate.Styles.SelectedTitle = styles.SelectedItemStyle
	delegate.Styles.NormalTitle = styles.NormalItemStyle

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.Styles.Title = styles.ModalTitleStyle

	return Picker{list: l, width: 32, height: pickerMaxHeight}
}

// Show opens the picker with an "All" entry followed by options. The cursor
// starts on selectedID.
func (p *Picker) Show(title string, options []PickerOption, selectedID string) {
	items := make([]list.Item, 0, len(options)+1)
	items = append(items, pickerItem{option: PickerOption{Label: AllLabel}, active: selectedID == ""})

	cursor := 0
	for i, opt := range options {
		active := opt.ID != "" && opt.ID == selectedID
		if active {
			cursor = i + 1
		}
		items = append(items, pickerItem{option: opt, active: active})
	}

	p.list.Title = title
	p.list.SetItems(items)
	p.resize()
	p.list.Select(cursor)
	p.visible = true
}

// Hide dismisses the picker
func (p *Picker) Hide() {
	p.visible = false
}

// IsVisible returns whether the picker is shown
func (p Picker) IsVisible() bool {
	return p.visible
}

// SetSize bounds the picker to the terminal size
func (p *Picker) SetSize(width, height int) {
	p.width = min(32, width)
	p.height = min(pickerMaxHeight, height-4)
	p.resize()
}

func (p *Picker) resize() {
	// title row plus pagination row
	h := min(len(p.list.Items())+4, p.height)
	p.list.SetSize(p.width, max(h, 3))
}

// Selected returns the option under the cursor
func (p Picker) Selected() (PickerOption, bool) {
	item, ok := p.list.SelectedItem().(pickerItem)
	if !ok {
		return PickerOption{}, false
	}
	return item.option, true
}

// Update handles keys while visible. chosen is non-nil when the user
// confirmed a choice.
func (p Picker) Update(msg tea.Msg) (Picker, *PickerOption) {
	if !p.visible {
		return p, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		p.list.CursorDown()
	case "k", "up":
		p.list.CursorUp()
	case "g", "home":
		p.list.Select(0)
	case "G", "end":
		p.list.Select(len(p.list.Items()) - 1)
	case "enter":
		opt, ok := p.Selected()
		p.visible = false
		if !ok {
			return p, nil
		}
		return p, &opt
	case "esc", "q":
		p.visible = false
	}
	return p, nil
}

// View renders the picker modal
func (p Picker) View() string {
	if !p.visible {
		return ""
	}
	return styles.ModalStyle.Padding(0, 1).Render(p.list.View())
}
