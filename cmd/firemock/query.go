package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/firemock"
)

type queryOptions struct {
	fixture    string
	collection string
	where      []string
	orderBy    string
	desc       bool
	limit      int
	startAt    string
	metrics    bool
}

type docOutput struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

type queryOutput struct {
	Collection string      `json:"collection"`
	Size       int         `json:"size"`
	Docs       []docOutput `json:"docs"`
}

func newQueryCmd() *cobra.Command {
	var opts queryOptions
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Load a fixture and evaluate a query against it",
		Example: `  firemock query --fixture testdata/list.yaml --collection list \
    --where 'value,>=,2' --order-by value --desc --limit 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.fixture, "fixture", "", "fixture file (YAML or JSON); defaults to fixtures.path from config")
	f.StringVarP(&opts.collection, "collection", "c", "", "collection path, e.g. users/u1/posts")
	f.StringArrayVarP(&opts.where, "where", "w", nil, "filter as field,op,value (repeatable)")
	f.StringVar(&opts.orderBy, "order-by", "", "sort field")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.IntVar(&opts.limit, "limit", 0, "maximum number of documents (must be positive when set)")
	f.StringVar(&opts.startAt, "start-at", "", "inclusive cursor value on the sort field")
	f.BoolVar(&opts.metrics, "metrics", false, "print query metrics to stderr in Prometheus text format")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}

func runQuery(cmd *cobra.Command, opts queryOptions) error {
	cfg, env, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(env, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	fixturePath := opts.fixture
	if fixturePath == "" {
		fixturePath = cfg.Fixtures.Path
	}
	if fixturePath == "" {
		return fmt.Errorf("no fixture: pass --fixture or set fixtures.path")
	}

	reg := prometheus.NewRegistry()
	clientOpts := []firemock.Option{
		firemock.WithLogger(logger),
		firemock.WithIDLength(cfg.IDs.Length),
	}
	if opts.metrics || cfg.Metrics.Enabled {
		clientOpts = append(clientOpts,
			firemock.WithPrometheus(reg),
			firemock.WithMetricsNamespace(cfg.Metrics.Namespace),
		)
	}
	client, err := firemock.New(clientOpts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	n, err := client.LoadFixtureFile(ctx, fixturePath)
	if err != nil {
		return err
	}
	logger.Debug("fixture ready", zap.String("path", fixturePath), zap.Int("documents", n))

	q, err := buildQuery(client.Collection(opts.collection).Query, opts)
	if err != nil {
		return err
	}
	snap, err := q.Get(ctx)
	if err != nil {
		return err
	}

	if err := writeSnapshot(cmd.OutOrStdout(), opts.collection, snap); err != nil {
		return err
	}
	if opts.metrics {
		return writeMetrics(cmd.ErrOrStderr(), reg)
	}
	return nil
}

func buildQuery(q firemock.Query, opts queryOptions) (firemock.Query, error) {
	for _, w := range opts.where {
		field, op, value, err := parseWhere(w)
		if err != nil {
			return q, err
		}
		q = q.Where(field, op, value)
	}
	if opts.orderBy != "" {
		dir := firemock.Asc
		if opts.desc {
			dir = firemock.Desc
		}
		q = q.OrderBy(opts.orderBy, dir)
	}
	if opts.startAt != "" {
		v, err := parseValue(opts.startAt)
		if err != nil {
			return q, fmt.Errorf("--start-at: %w", err)
		}
		q = q.StartAt(v)
	}
	if opts.limit != 0 {
		var err error
		if q, err = q.Limit(opts.limit); err != nil {
			return q, err
		}
	}
	return q, q.Err()
}

// parseWhere splits "field,op,value". The value may itself contain commas.
func parseWhere(s string) (string, string, any, error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) != 3 {
		return "", "", nil, fmt.Errorf("--where %q: expected field,op,value", s)
	}
	field, op := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	v, err := parseValue(parts[2])
	if err != nil {
		return "", "", nil, fmt.Errorf("--where %q: %w", s, err)
	}
	return field, op, v, nil
}

// parseValue reads a flag value as a YAML scalar or flow collection:
// 5 is a number, true a boolean, m a string, "5" a string, [1, 2] an array.
func parseValue(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(s)), &v); err != nil {
		return nil, fmt.Errorf("parse value %q: %w", s, err)
	}
	return v, nil
}

func writeSnapshot(w io.Writer, collection string, snap *firemock.QuerySnapshot) error {
	out := queryOutput{Collection: collection, Size: snap.Size(), Docs: make([]docOutput, 0, snap.Size())}
	for _, d := range snap.Docs() {
		out.Docs = append(out.Docs, docOutput{ID: d.ID(), Data: d.Data()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
