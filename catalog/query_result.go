package catalog

import (
	"sort"
	"strings"

	"pobsd/game"
)

// QueryResult is an ordered list of items returned by a query.
type QueryResult[T any] struct {
	Items []T
}

// Len returns the number of items.
func (q QueryResult[T]) Len() int { return len(q.Items) }

// At returns the i-th item.
func (q QueryResult[T]) At(i int) T { return q.Items[i] }

// Filter returns the items for which keep returns true, in order.
func (q QueryResult[T]) Filter(keep func(T) bool) QueryResult[T] {
	var items []T
	for _, it := range q.Items {
		if keep(it) {
			items = append(items, it)
		}
	}
	return QueryResult[T]{Items: items}
}

// GameResult is a list of games sorted by game.Compare. Its narrowing
// methods return new results and never touch the catalog.
type GameResult struct {
	QueryResult[*game.Game]
}

func newGameResult(games []*game.Game) GameResult {
	game.SortGames(games)
	return GameResult{QueryResult[*game.Game]{Items: games}}
}

func (r GameResult) narrow(keep func(*game.Game) bool) GameResult {
	return newGameResult(r.Filter(keep).Items)
}

// FilterByField keeps the games whose field f equals value. For list fields
// a single matching element is enough.
func (r GameResult) FilterByField(f game.Field, value string) GameResult {
	return r.narrow(func(g *game.Game) bool {
		for _, v := range g.Values(f) {
			if v == value {
				return true
			}
		}
		return false
	})
}

// FilterBySubstring keeps the games whose field f contains text, ignoring case.
func (r GameResult) FilterBySubstring(f game.Field, text string) GameResult {
	needle := strings.ToLower(text)
	return r.narrow(func(g *game.Game) bool {
		return matches(g, f, needle)
	})
}

// FilterByName keeps the games named exactly name.
func (r GameResult) FilterByName(name string) GameResult {
	return r.FilterByField(game.FieldGame, name)
}

// SearchByName keeps the games whose name contains text, ignoring case.
func (r GameResult) SearchByName(text string) GameResult {
	return r.FilterBySubstring(game.FieldGame, text)
}

// First returns the first game of the result.
func (r GameResult) First() (*game.Game, bool) {
	if len(r.Items) == 0 {
		return nil, false
	}
	return r.Items[0], true
}

// Names returns the names of the games in order.
func (r GameResult) Names() []string {
	names := make([]string, len(r.Items))
	for i, g := range r.Items {
		names[i] = g.Name
	}
	return names
}

// ItemResult is a sorted list of distinct field values.
type ItemResult struct {
	QueryResult[string]
}

func newItemResult(items []string) ItemResult {
	sort.Strings(items)
	return ItemResult{QueryResult[string]{Items: items}}
}

// FilterByName returns the item equal to name.
func (r ItemResult) FilterByName(name string) (string, bool) {
	for _, it := range r.Items {
		if it == name {
			return it, true
		}
	}
	return "", false
}

// SearchByName keeps the items containing text, ignoring case.
func (r ItemResult) SearchByName(text string) ItemResult {
	needle := strings.ToLower(text)
	return ItemResult{r.Filter(func(it string) bool {
		return strings.Contains(strings.ToLower(it), needle)
	})}
}

// matches is the substring test shared by every search: list fields are
// joined with a space before the comparison.
func matches(g *game.Game, f game.Field, needle string) bool {
	values := g.Values(f)
	if values == nil {
		return false
	}
	return strings.Contains(strings.ToLower(strings.Join(values, " ")), needle)
}
