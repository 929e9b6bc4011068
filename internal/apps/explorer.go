package apps

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/registry"
	"github.com/Gaurav-Gosain/winnux/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// FileItem is one row of the file list.
type FileItem struct {
	Name   string
	Folder bool
	Size   string
	Date   string
}

// Favorites are the sidebar shortcuts.
var Favorites = []string{"Desktop", "Downloads", "Documents", "Pictures", "Music", "Videos"}

// HomeFiles is the listing of the home folder.
var HomeFiles = []FileItem{
	{Name: "Documents", Folder: true, Date: "2023-10-24 10:30"},
	{Name: "Downloads", Folder: true, Date: "2023-10-24 11:15"},
	{Name: "Pictures", Folder: true, Date: "2023-10-23 09:20"},
	{Name: "project_notes.txt", Size: "2 KB", Date: "2023-10-25 14:00"},
	{Name: "resume.pdf", Size: "1.2 MB", Date: "2023-10-20 16:45"},
	{Name: "vacation.jpg", Size: "4.5 MB", Date: "2023-09-15 08:30"},
}

const sidebarWidth = 14

// Explorer is the mock file browser.
type Explorer struct {
	id       string
	selected int
}

// NewExplorer creates a file browser on the home folder.
func NewExplorer(id string) *Explorer {
	return &Explorer{id: id}
}

// Init implements registry.Content.
func (e *Explorer) Init() tea.Cmd { return nil }

// Selected returns the highlighted file.
func (e *Explorer) Selected() FileItem { return HomeFiles[e.selected] }

// Update implements registry.Content.
func (e *Explorer) Update(msg tea.Msg) (registry.Content, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "up", "k":
			e.selected = max(e.selected-1, 0)
		case "down", "j":
			e.selected = min(e.selected+1, len(HomeFiles)-1)
		case "home", "g":
			e.selected = 0
		case "end", "G":
			e.selected = len(HomeFiles) - 1
		}
	}
	return e, nil
}

// View implements registry.Content.
func (e *Explorer) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	dim := lipgloss.NewStyle().Foreground(theme.TaskbarDimmed())
	head := lipgloss.NewStyle().Bold(true)
	sel := lipgloss.NewStyle().Background(theme.StartMenuSelection()).Bold(true)

	side := []string{head.Render("Favorites")}
	folder := config.Icon(config.IconFolder, config.IconFolderASCII)
	for _, f := range Favorites {
		side = append(side, " "+folder+" "+f)
	}
	side = append(side, "", head.Render("This PC"), " Local Disk (C:)")

	mainW := max(width-sidebarWidth-1, 10)
	nameW := max(mainW-28, 8)
	rows := []string{
		dim.Render("This PC > Home > winnux"),
		head.Render(fmt.Sprintf("%-*s %-16s %8s", nameW, "Name", "Date modified", "Size")),
	}
	file := config.Icon(config.IconFile, config.IconFileASCII)
	for i, it := range HomeFiles {
		icon := file
		if it.Folder {
			icon = folder
		}
		name := ansi.Truncate(icon+" "+it.Name, nameW, "…")
		line := fmt.Sprintf("%s%s %-16s %8s", name, strings.Repeat(" ", max(nameW-ansi.StringWidth(name), 0)), it.Date, it.Size)
		if i == e.selected {
			line = sel.Render(line)
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", dim.Render(fmt.Sprintf("%d items", len(HomeFiles))))

	sideBlock := lipgloss.NewStyle().Width(sidebarWidth).Render(strings.Join(side, "\n"))
	sep := dim.Render(strings.TrimRight(strings.Repeat("│\n", height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, sideBlock, sep, strings.Join(rows, "\n"))
}
