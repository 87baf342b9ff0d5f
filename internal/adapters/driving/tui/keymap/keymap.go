// Package keymap defines keybindings for the TUI.
package keymap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Back   key.Binding
	Search key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// NewSearch starts a new search from the results list.
	NewSearch key.Binding

	// Open opens the selected document.
	Open key.Binding

	// Filter focuses the free-text filter in the library.
	Filter key.Binding

	// NextTag cycles the library's tag filter.
	NextTag key.Binding

	NextPage key.Binding
	PrevPage key.Binding

	// Regenerate asks the backend for a fresh summary.
	Regenerate key.Binding

	// Toggle enables or disables the selected source.
	Toggle key.Binding

	// Crawl queues a crawl of the selected source.
	Crawl key.Binding

	Reload key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		NextTag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next tag"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "prev page"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "regenerate summary"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("e", " "),
			key.WithHelp("e", "enable/disable"),
		),
		Crawl: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "crawl"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Help}
}

// ResultsHelp returns keybindings for the search results list.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewSearch, k.Up, k.Open, k.Back}
}

// DocumentsHelp returns keybindings for the library view.
func (k *KeyMap) DocumentsHelp() []key.Binding {
	return []key.Binding{k.Open, k.Filter, k.NextTag, k.PrevPage, k.NextPage, k.Reload, k.Back}
}

// DocumentHelp returns keybindings for the document view.
func (k *KeyMap) DocumentHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Regenerate, k.Back}
}

// SourcesHelp returns keybindings for the sources view.
func (k *KeyMap) SourcesHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Crawl, k.Reload, k.Back}
}

// FullHelp returns the grouped keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Search, k.NewSearch, k.Open},
		{k.Filter, k.NextTag, k.PrevPage, k.NextPage},
		{k.Regenerate, k.Toggle, k.Crawl, k.Reload},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}

// HelpLine renders bindings as a single "[key] desc" footer line.
func HelpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}
