package firemock

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/firemock/internal/domain"
	"github.com/kailas-cloud/firemock/internal/idgen"
	"github.com/kailas-cloud/firemock/internal/logger"
	"github.com/kailas-cloud/firemock/internal/metrics"
	"github.com/kailas-cloud/firemock/internal/repository/fixture"
	"github.com/kailas-cloud/firemock/internal/repository/memory"
	batchuc "github.com/kailas-cloud/firemock/internal/usecase/batch"
	documentuc "github.com/kailas-cloud/firemock/internal/usecase/document"
	queryuc "github.com/kailas-cloud/firemock/internal/usecase/query"
)

// IDGenerator produces ids for documents created with NewDoc or Add.
type IDGenerator interface {
	NewID() (string, error)
}

// Client is the firemock entry point: an in-memory document database.
type Client struct {
	store    *memory.Store
	docSvc   *documentuc.Service
	querySvc *queryuc.Service
	batchSvc *batchuc.Service
	logger   *zap.Logger
}

// New creates an empty in-memory database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	ids := cfg.idGenerator
	if ids == nil {
		g, err := idgen.New(cfg.idLength)
		if err != nil {
			return nil, fmt.Errorf("firemock: %w", err)
		}
		ids = g
	}

	m, err := metrics.NewQuery(cfg.metricsReg, cfg.metricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("firemock: %w", err)
	}

	store := memory.New(cfg.logger)
	return &Client{
		store:    store,
		docSvc:   documentuc.New(store, ids),
		querySvc: queryuc.New(store).WithMetrics(m),
		batchSvc: batchuc.New(store),
		logger:   cfg.logger,
	}, nil
}

// LoadFixture populates the database from a YAML or JSON literal of the shape
// {<collection>: {docs: {<id>: {data: {...}, collections: {...}}}}}.
// Key order in the literal becomes insertion order. Returns the number of
// documents written.
func (c *Client) LoadFixture(ctx context.Context, data []byte) (int, error) {
	db, err := fixture.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("firemock: %w", err)
	}
	return c.load(ctx, db)
}

// LoadFixtureFile populates the database from a fixture file.
func (c *Client) LoadFixtureFile(ctx context.Context, path string) (int, error) {
	db, err := fixture.ParseFile(path)
	if err != nil {
		return 0, fmt.Errorf("firemock: %w", err)
	}
	return c.load(ctx, db)
}

// LoadFixtureMap populates the database from Go maps in the fixture shape.
// Go maps carry no order, so documents are inserted sorted by id.
func (c *Client) LoadFixtureMap(ctx context.Context, m map[string]any) (int, error) {
	db, err := fixture.FromMap(m)
	if err != nil {
		return 0, fmt.Errorf("firemock: %w", err)
	}
	return c.load(ctx, db)
}

func (c *Client) load(ctx context.Context, db fixture.Database) (int, error) {
	n, err := fixture.Load(c.ctx(ctx), c.store, db)
	if err != nil {
		return n, fmt.Errorf("firemock: %w", err)
	}
	c.logger.Debug("fixture loaded", zap.Int("documents", n))
	return n, nil
}

// Reset drops every collection.
func (c *Client) Reset() {
	c.store.Reset()
}

// CollectionPaths returns the sorted slash paths of all non-empty collections.
func (c *Client) CollectionPaths(ctx context.Context) []string {
	return c.store.Collections(ctx)
}

// Collection returns a reference to the collection at a slash path
// such as "users" or "users/u1/posts".
func (c *Client) Collection(path string) *CollectionRef {
	return newCollectionRef(c, path)
}

// Doc returns a reference to the document at a slash path such as "users/u1".
// A malformed path yields a reference whose operations fail with ErrValidation.
func (c *Client) Doc(path string) *DocumentRef {
	segs := strings.Split(path, "/")
	if len(segs) < 2 || len(segs)%2 != 0 {
		return &DocumentRef{
			client: c,
			id:     path,
			err: domain.NewValidationError("doc", "",
				fmt.Sprintf("document path %q must have an even number of segments", path)),
		}
	}
	parent := strings.Join(segs[:len(segs)-1], "/")
	return newCollectionRef(c, parent).Doc(segs[len(segs)-1])
}

// ctx attaches the client logger to the context.
func (c *Client) ctx(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, c.logger)
}
