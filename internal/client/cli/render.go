package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/contactbook/internal/client/models"
)

type styles struct {
	heading lipgloss.Style
	star    lipgloss.Style
	id      lipgloss.Style
	dim     lipgloss.Style
	notice  lipgloss.Style
}

// newStyles returns the list styles. Plain styles carry no attributes, for
// output that is not a terminal.
func newStyles(plain bool) styles {
	if plain {
		s := lipgloss.NewStyle()
		return styles{heading: s, star: s, id: s, dim: s, notice: s}
	}
	return styles{
		heading: lipgloss.NewStyle().Bold(true).Underline(true),
		star:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		id:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		dim:     lipgloss.NewStyle().Faint(true),
		notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// renderLists writes favorites first, then regular contacts, then the count
// line.
func renderLists(w io.Writer, st styles, favorite, regular []models.Contact) {
	if len(favorite) > 0 {
		fmt.Fprintln(w, st.heading.Render("Favorites")+" "+st.star.Render("★"))
		for _, c := range favorite {
			fmt.Fprintln(w, renderContact(st, c))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, st.heading.Render("Contacts"))
	for _, c := range regular {
		fmt.Fprintln(w, renderContact(st, c))
	}
	fmt.Fprintln(w, st.dim.Render(fmt.Sprintf("There are %d contacts on your screen", len(favorite)+len(regular))))
}

func renderContact(st styles, c models.Contact) string {
	numbers := "-"
	if len(c.Numbers) > 0 {
		numbers = strings.Join(c.Numbers, ", ")
	}
	return fmt.Sprintf("%s %s  %s", st.id.Render(fmt.Sprintf("[%d]", c.ID)), c.Name, st.dim.Render(numbers))
}

// renderPhones writes the phone entries of an edit session, numbered from 1.
func renderPhones(w io.Writer, st styles, phones []models.PhoneEntry) {
	if len(phones) == 0 {
		fmt.Fprintln(w, st.dim.Render("  (no numbers)"))
		return
	}
	for i, p := range phones {
		mark := ""
		if !p.Persisted() {
			mark = st.dim.Render(" (new)")
		}
		fmt.Fprintf(w, "  %d. %s%s\n", i+1, p.Value, mark)
	}
}
