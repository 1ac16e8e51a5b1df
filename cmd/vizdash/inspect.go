package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"vizdash/internal/domain/record"
	"vizdash/internal/service/analytics"
)

var (
	inspectRemote string
	inspectField  string
	inspectTop    int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print filter criteria and per-value counts for the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src, closeSource, err := openSource(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeSource()

		var fields []record.Field
		if inspectField != "" {
			f, ok := record.ParseField(inspectField)
			if !ok {
				return eris.Wrapf(record.ErrInvalid, "unknown field %q", inspectField)
			}
			fields = []record.Field{f}
		}

		return inspect(ctx, cmd.OutOrStdout(), src, fields, inspectTop, sortOptions(cfg.Analytics)...)
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectRemote, "remote", "", "read the dataset from a running backend instead of the store")
	inspectCmd.Flags().StringVar(&inspectField, "field", "", "only report this field")
	inspectCmd.Flags().IntVar(&inspectTop, "top", 10, "values listed per field")
	rootCmd.AddCommand(inspectCmd)
}

// inspect writes a criteria and count summary of the dataset to w
func inspect(ctx context.Context, w io.Writer, src record.Source, fields []record.Field, top int, opts ...analytics.SortOption) error {
	records, err := src.FindAll(ctx)
	if err != nil {
		return eris.Wrap(err, "inspect: load dataset")
	}
	if len(fields) == 0 {
		fields = record.Fields
	}

	criteria := analytics.BuildFilterCriteria(records, opts...)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "records\t%d\n", len(records))

	for _, f := range fields {
		values := criteriaValues(criteria, f)
		fmt.Fprintf(tw, "\n%s\t%d distinct\n", f, len(values))
		fmt.Fprintf(tw, "  values\t%s\n", strings.Join(values, ", "))

		groups := analytics.CountByKey(records, f)
		if top > 0 {
			groups = analytics.TopN(groups, top, analytics.OthersLabel)
		}
		for _, g := range groups {
			fmt.Fprintf(tw, "  %s\t%d\n", g.Key, g.Count)
		}
	}

	return tw.Flush()
}

func criteriaValues(c record.FilterCriteria, f record.Field) []string {
	if f != record.FieldEndYear {
		return c.Values(f)
	}
	out := make([]string, 0, len(c.EndYear))
	for _, y := range c.EndYear {
		out = append(out, strconv.Itoa(y))
	}
	return out
}
