package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/contactbook/internal/client/models"
	"github.com/dmitrijs2005/contactbook/internal/client/services"
)

func (a *App) Add(ctx context.Context) error {
	first, err := GetSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	last, err := GetSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	numbers, err := GetLines(a.reader, "Phone numbers, one per line", a.out)
	if err != nil {
		return err
	}

	c, err := a.editor.Add(ctx, first, last, numbers)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Contact added: %s\n", renderContact(a.styles, c))
	return nil
}

func (a *App) Edit(ctx context.Context, id int) error {
	s, err := a.editor.Open(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	return a.editLoop(ctx, s)
}

// Resume reloads an edit that stopped half way and retries it from the first
// unfinished step.
func (a *App) Resume(ctx context.Context, id int) error {
	s, err := a.editor.Resume(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Resuming edit of contact %d at step %d\n", id, s.Step()+1)
	return a.save(ctx, s)
}

// Abandon reverts whatever a stopped edit already applied.
func (a *App) Abandon(ctx context.Context, id int) error {
	s, err := a.editor.Resume(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	if err := a.editor.Abandon(ctx, s); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Edit of contact %d abandoned\n", id)
	return nil
}

const editHelp = `Edit commands:
  name               change first and last name
  add <number>       add a phone number
  set <n> <number>   change phone number n
  rm <n>             remove phone number n
  save               apply the changes
  cancel             discard the changes`

// editLoop is the edit form. Changes stay in the session until "save".
func (a *App) editLoop(ctx context.Context, s *services.EditSession) error {
	fmt.Fprintln(a.out, editHelp)
	for {
		a.renderSession(s)

		line, err := GetSimpleText(a.reader, "edit", a.out)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "name":
			first, err := GetSimpleText(a.reader, "First name", a.out)
			if err != nil {
				return err
			}
			last, err := GetSimpleText(a.reader, "Last name", a.out)
			if err != nil {
				return err
			}
			a.report(ctx, s.SetName(first, last))

		case "add":
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: add <number>")
				continue
			}
			a.report(ctx, s.AddNumber(parts[1]))

		case "set":
			n, ok := a.position(parts, 3)
			if !ok {
				fmt.Fprintln(a.out, "Usage: set <n> <number>")
				continue
			}
			a.report(ctx, s.SetNumber(n, parts[2]))

		case "rm":
			n, ok := a.position(parts, 2)
			if !ok {
				fmt.Fprintln(a.out, "Usage: rm <n>")
				continue
			}
			a.report(ctx, s.RemoveNumber(n))

		case "save":
			return a.save(ctx, s)

		case "cancel":
			fmt.Fprintln(a.out, "Changes discarded")
			return nil

		default:
			fmt.Fprintln(a.out, editHelp)
		}
	}
}

func (a *App) save(ctx context.Context, s *services.EditSession) error {
	c, err := a.editor.Save(ctx, s)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Contact saved: %s\n", renderContact(a.styles, c))
	return nil
}

func (a *App) renderSession(s *services.EditSession) {
	first, last := s.Name()
	fmt.Fprintln(a.out, a.styles.heading.Render(models.DisplayName(first, last)))
	renderPhones(a.out, a.styles, s.Phones())
	if pending := s.PendingDeletes(); len(pending) > 0 {
		fmt.Fprintln(a.out, a.styles.dim.Render("  to delete: "+strings.Join(pending, ", ")))
	}
}

// position parses the 1-based phone position in parts[1] and checks that
// parts has exactly want fields.
func (a *App) position(parts []string, want int) (int, bool) {
	if len(parts) != want {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func (a *App) report(ctx context.Context, err error) {
	if err != nil {
		_ = a.fail(ctx, err)
		fmt.Fprintln(a.out, a.notifier.Current())
	}
}
