package cmdapi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tuannm99/novaschema/internal/catalog"
	"github.com/tuannm99/novaschema/internal/record"
)

func resolveCmd(e *env) *cobra.Command {
	var (
		flags = &struct {
			Tables []string
			JSON   bool
		}{}
		cmd = &cobra.Command{
			Use:   "resolve FILE",
			Short: "Print the codec descriptors of the tables defined in a file.",
			Long: `'novaschema resolve' loads table definitions and prints, for every table, its
columns in codec order together with the descriptor each one resolves to.

The file format follows the extension: ".hcl" for HCL table blocks, ".sql" for
CREATE TABLE scripts, and ".yaml", ".yml", ".json" or ".toml" for table lists.`,
			Example: `  novaschema resolve schema.hcl
  novaschema resolve tables.sql --table users --json`,
			Args: cobra.ExactArgs(1),
		}
	)
	cmd.Flags().SortFlags = false
	cmd.Flags().StringSliceVarP(&flags.Tables, "table", "t", nil, "only resolve the named tables")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "print JSON instead of a table")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		schemas, err := resolveSelected(c, e.resolver, flags.Tables)
		if err != nil {
			return err
		}
		e.log.Debug().Str("file", args[0]).Int("tables", len(schemas)).Msg("resolved")
		return printSchemas(cmd.OutOrStdout(), schemas, flags.JSON)
	}
	return cmd
}

func resolveSelected(c *catalog.Catalog, r record.Resolver, names []string) ([]*catalog.TableSchema, error) {
	if len(names) == 0 {
		return c.ResolveAll(r)
	}
	out := make([]*catalog.TableSchema, 0, len(names))
	for _, name := range names {
		t, err := c.Table(name)
		if err != nil {
			return nil, err
		}
		ts, err := t.Resolve(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

func typesCmd(e *env) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the recognized column type keywords and their variants.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kw := record.Keywords()
			for alias := range e.resolver.Aliases() {
				v, err := e.resolver.ResolveTypeName(alias)
				if err != nil {
					return err
				}
				kw[alias] = v
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), kw)
			}

			names := make([]string, 0, len(kw))
			for name := range kw {
				names = append(names, name)
			}
			sort.Strings(names)

			var buf strings.Builder
			tbl := tablewriter.NewWriter(&buf)
			tbl.SetHeader([]string{"Keyword", "Variant", "Width"})
			for _, name := range names {
				v := kw[name]
				tbl.Append([]string{name, v.String(), strconv.Itoa(v.FixedWidth())})
			}
			tbl.Render()
			_, err := fmt.Fprint(cmd.OutOrStdout(), buf.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
