package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-commerce-dashboard/components/listview"
	"github.com/goliatone/go-commerce-dashboard/pkg/commerce"
)

type cli struct {
	Page pageCmd `cmd:"" help:"Filter, sort and paginate the records of a JSON file."`
	Top  topCmd  `cmd:"" help:"Group records, total them and print the top N groups."`
}

type inputFlags struct {
	File      string            `short:"f" required:"" help:"JSON file holding an array of records or a {\"data\": [...]} envelope (- for stdin)."`
	Filter    map[string]string `help:"Field filters (field=value, comma separated values match any)."`
	Format    string            `enum:"yaml,json" default:"yaml" help:"Output format (yaml, json)."`
	RawFields bool              `name:"raw-fields" help:"Keep record keys and field names as given instead of normalizing them to snake_case."`
}

type pageCmd struct {
	inputFlags
	Search      string   `short:"s" help:"Case-insensitive text search."`
	SearchField []string `name:"search-field" help:"Fields searched by --search (default: every top-level text field)."`
	Sort        string   `help:"Field to sort by."`
	Direction   string   `default:"asc" enum:"asc,desc" help:"Sort direction (asc, desc)."`
	PageNum     int      `name:"page" default:"1" help:"1-based page number."`
	PageSize    int      `name:"page-size" default:"10" help:"Records per page."`
	Strict      bool     `help:"Reject page numbers below 1 instead of clamping."`
}

type topCmd struct {
	inputFlags
	GroupBy   string   `name:"group-by" required:"" help:"Field that forms the groups (e.g. product_id)."`
	Sum       []string `help:"Numeric fields summed per group."`
	Metric    string   `default:"count" help:"Ranking metric: count or one of the summed fields."`
	Limit     int      `short:"n" default:"5" help:"Number of groups to keep."`
	Flatten   string   `help:"Expand a nested array (e.g. items) into records before grouping."`
	Direction string   `default:"desc" enum:"asc,desc" help:"Ranking direction (asc, desc)."`
}

type runContext struct {
	ctx   context.Context
	out   io.Writer
	stdin io.Reader
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Name("listctl"),
		kong.Description("Run list aggregations (filter, sort, paginate, top N) over exported commerce records."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&runContext{ctx: context.Background(), out: os.Stdout, stdin: os.Stdin})
	ctx.FatalIfErrorf(err)
}

type pageOutput struct {
	Page   listview.PageResult[listview.Record] `json:"page" yaml:"page"`
	Window []int                                `json:"window" yaml:"window"`
}

func (cmd *pageCmd) Run(rc *runContext) error {
	records, err := cmd.load(rc)
	if err != nil {
		return err
	}
	query := listview.Query{
		Search:    cmd.Search,
		Filters:   cmd.filters(),
		SortBy:    cmd.field(cmd.Sort),
		Direction: listview.ParseDirection(cmd.Direction),
		Page:      cmd.PageNum,
		PageSize:  cmd.PageSize,
	}
	for _, field := range cmd.SearchField {
		query.SearchFields = append(query.SearchFields, cmd.field(field))
	}
	if cmd.Strict {
		query.Mode = listview.StrictPage
	}
	if query.PageSize == 0 {
		return fmt.Errorf("listctl: %w", &listview.InvalidPageSizeError{Size: 0})
	}
	page, err := listview.Compute(records, query)
	if err != nil {
		return fmt.Errorf("listctl: %w", err)
	}
	return cmd.write(rc.out, pageOutput{Page: page, Window: page.Window(0)})
}

type topRow struct {
	Rank   int                `json:"rank" yaml:"rank"`
	Key    string             `json:"key" yaml:"key"`
	Count  int                `json:"count" yaml:"count"`
	Sums   map[string]float64 `json:"sums,omitempty" yaml:"sums,omitempty"`
	Metric float64            `json:"metric" yaml:"metric"`
	Share  float64            `json:"share" yaml:"share"`
}

type topOutput struct {
	GroupBy string   `json:"group_by" yaml:"group_by"`
	Metric  string   `json:"metric" yaml:"metric"`
	Groups  int      `json:"groups" yaml:"groups"`
	Total   float64  `json:"total" yaml:"total"`
	Rows    []topRow `json:"rows" yaml:"rows"`
}

func (cmd *topCmd) Run(rc *runContext) error {
	records, err := cmd.load(rc)
	if err != nil {
		return err
	}
	if cmd.Flatten != "" {
		records = listview.Flatten(records, cmd.field(cmd.Flatten))
	}
	records = listview.Filter(records, listview.Query{Filters: cmd.filters()}.FilterSpec())

	groupBy := cmd.field(cmd.GroupBy)
	metric := cmd.Metric
	if metric != "count" {
		metric = cmd.field(metric)
	}
	sums := make([]string, 0, len(cmd.Sum)+1)
	for _, field := range cmd.Sum {
		sums = append(sums, cmd.field(field))
	}
	if metric != "count" && !slices.Contains(sums, metric) {
		sums = append(sums, metric)
	}

	groups := listview.Aggregate(records, listview.TotalsBy(groupBy, sums...))
	value := func(t listview.Totals) float64 {
		if metric == "count" {
			return float64(t.Count)
		}
		return t.Sum(metric)
	}
	entries := groups.Entries()
	var total float64
	for _, entry := range entries {
		total += value(entry.Value)
	}
	top, err := listview.TopN(entries, cmd.Limit, listview.ByKey(func(e listview.Entry[string, listview.Totals]) float64 {
		return value(e.Value)
	}, listview.ParseDirection(cmd.Direction)))
	if err != nil {
		return fmt.Errorf("listctl: %w", err)
	}

	out := topOutput{GroupBy: groupBy, Metric: metric, Groups: len(entries), Total: total, Rows: make([]topRow, len(top))}
	for i, entry := range top {
		out.Rows[i] = topRow{
			Rank:   i + 1,
			Key:    entry.Key,
			Count:  entry.Value.Count,
			Sums:   entry.Value.Sums,
			Metric: value(entry.Value),
			Share:  listview.PercentageOf(value(entry.Value), total),
		}
		if len(out.Rows[i].Sums) == 0 {
			out.Rows[i].Sums = nil
		}
	}
	return cmd.write(rc.out, out)
}

func (f *inputFlags) load(rc *runContext) ([]listview.Record, error) {
	var (
		data []byte
		err  error
	)
	if f.File == "-" {
		data, err = io.ReadAll(rc.stdin)
	} else {
		data, err = os.ReadFile(f.File)
	}
	if err != nil {
		return nil, fmt.Errorf("listctl: read %s: %w", f.File, err)
	}
	records, err := commerce.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("listctl: parse %s: %w", f.File, err)
	}
	if !f.RawFields {
		for i, record := range records {
			records[i] = normalizeKeys(map[string]any(record)).(map[string]any)
		}
	}
	return records, nil
}

// normalizeKeys rewrites map keys to snake_case at every depth.
func normalizeKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			out[strcase.ToSnake(key)] = normalizeKeys(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeKeys(item)
		}
		return out
	}
	return v
}

// field normalizes a dotted field path segment by segment, e.g.
// Customer.FullName -> customer.full_name.
func (f *inputFlags) field(path string) string {
	path = strings.TrimSpace(path)
	if f.RawFields || path == "" {
		return path
	}
	parts := strings.Split(path, ".")
	for i, part := range parts {
		parts[i] = strcase.ToSnake(part)
	}
	return strings.Join(parts, ".")
}

func (f *inputFlags) filters() map[string]string {
	if len(f.Filter) == 0 {
		return nil
	}
	out := make(map[string]string, len(f.Filter))
	for key, value := range f.Filter {
		out[f.field(key)] = value
	}
	return out
}

func (f *inputFlags) write(w io.Writer, v any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	var doc any
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("listctl: encode: %w", err)
	}
	// Round trip through JSON so json.Number values print as plain numbers.
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("listctl: encode: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(doc)
}
