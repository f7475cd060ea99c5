package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pobsd/catalog"
	"pobsd/game"
)

// queryOptions selects games by a first field then narrows them with an
// optional second one. List enumerates the values of an indexed field.
type queryOptions struct {
	Field      string
	Value      string
	Search     string
	ThenField  string
	ThenValue  string
	ThenSearch string
	List       string
}

var queryOpts queryOptions

var queryCmd = &cobra.Command{
	Use:   "query [DATABASE]",
	Short: "Query the games of the database",
	Long: `Select games by exact value (--value) or case insensitive substring
(--search) of a field, optionally narrowing the result with a second field.
--list prints the distinct values of an indexed field instead.

Examples:
  pobsd query games.db --field year --value 2011
  pobsd query games.db --field tag --value indie --then-field engine --then-value FNA
  pobsd query games.db --field dev --search lantern
  pobsd query games.db --list engine`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := loadCatalog(cmd, databasePath(args))
		if err != nil {
			return err
		}
		lines, err := runQuery(cat, queryOpts)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	flags := queryCmd.Flags()
	flags.StringVar(&queryOpts.Field, "field", "", "field to select on (name, engine, tag, year, dev, ...)")
	flags.StringVar(&queryOpts.Value, "value", "", "exact value of --field")
	flags.StringVar(&queryOpts.Search, "search", "", "substring of --field, ignoring case")
	flags.StringVar(&queryOpts.ThenField, "then-field", "", "field to narrow the result on")
	flags.StringVar(&queryOpts.ThenValue, "then-value", "", "exact value of --then-field")
	flags.StringVar(&queryOpts.ThenSearch, "then-search", "", "substring of --then-field, ignoring case")
	flags.StringVar(&queryOpts.List, "list", "", "print the distinct values of an indexed field")
	queryCmd.MarkFlagsMutuallyExclusive("value", "search")
	queryCmd.MarkFlagsMutuallyExclusive("then-value", "then-search")
	queryCmd.MarkFlagsMutuallyExclusive("list", "field")
}

func lookupField(name string) (game.Field, error) {
	f, ok := game.LookupField(name)
	if !ok {
		return 0, fmt.Errorf("unknown field %q", name)
	}
	return f, nil
}

// runQuery returns the names of the selected games, or the values of the
// listed field.
func runQuery(cat *catalog.Catalog, q queryOptions) ([]string, error) {
	if q.List != "" {
		f, err := lookupField(q.List)
		if err != nil {
			return nil, err
		}
		if !cat.Indexed(f) {
			return nil, fmt.Errorf("field %s is not indexed, indexed fields are %s", f, indexedList())
		}
		return cat.GetAllField(f).Items, nil
	}

	if q.Field == "" {
		return nil, errors.New("either --field or --list is required")
	}
	f, err := lookupField(q.Field)
	if err != nil {
		return nil, err
	}

	var res catalog.GameResult
	switch {
	case q.Value != "" && cat.Indexed(f):
		res = cat.GetByField(f, q.Value)
	case q.Value != "":
		res = cat.GetAll().FilterByField(f, q.Value)
	case q.Search != "":
		res = cat.SearchByField(f, q.Search)
	default:
		return nil, errors.New("--field needs --value or --search")
	}

	if q.ThenField != "" {
		then, err := lookupField(q.ThenField)
		if err != nil {
			return nil, err
		}
		switch {
		case q.ThenValue != "":
			res = res.FilterByField(then, q.ThenValue)
		case q.ThenSearch != "":
			res = res.FilterBySubstring(then, q.ThenSearch)
		default:
			return nil, errors.New("--then-field needs --then-value or --then-search")
		}
	}
	return res.Names(), nil
}

func indexedList() string {
	fields := catalog.IndexedFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Tag()
	}
	return strings.Join(names, ", ")
}
