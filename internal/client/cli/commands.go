package cli

import (
	"context"
	"fmt"
)

func (a *App) List(ctx context.Context) error {
	renderLists(a.out, a.styles, a.store.Favorites(), a.store.Regular())
	return nil
}

// More fetches the next page, the terminal stand-in for scrolling to the
// bottom of the list.
func (a *App) More(ctx context.Context) error {
	res, err := a.contacts.FetchNextPage(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	switch {
	case res.Appended > 0:
		fmt.Fprintf(a.out, "Loaded %d more contacts\n", res.Appended)
	case res.Exhausted:
		fmt.Fprintln(a.out, "No more contacts")
	default:
		fmt.Fprintln(a.out, "No new contacts on this page")
	}
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	regular, favorite := a.contacts.Search(query)
	renderLists(a.out, a.styles, favorite, regular)
	return nil
}

func (a *App) Find(ctx context.Context, query string) error {
	found, err := a.contacts.SearchRemote(ctx, query)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, a.styles.heading.Render("Found on server"))
	for _, c := range found {
		fmt.Fprintln(a.out, renderContact(a.styles, c))
	}
	fmt.Fprintln(a.out, a.styles.dim.Render(fmt.Sprintf("%d matches", len(found))))
	return nil
}

func (a *App) Favorite(ctx context.Context, id int) error {
	if a.store.IsFavorite(id) {
		fmt.Fprintf(a.out, "Contact %d is already a favorite\n", id)
		return nil
	}
	if _, err := a.contacts.ToggleFavorite(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Contact %d added to favorites\n", id)
	return nil
}

func (a *App) Unfavorite(ctx context.Context, id int) error {
	if !a.store.IsFavorite(id) {
		fmt.Fprintf(a.out, "Contact %d is not a favorite\n", id)
		return nil
	}
	if _, err := a.contacts.ToggleFavorite(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Contact %d removed from favorites\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, id int) error {
	if err := a.contacts.Delete(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Contact %d deleted\n", id)
	return nil
}
