package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"icatdirect/internal/config"
	"icatdirect/internal/domain/models"
	"icatdirect/internal/domain/services"
	"icatdirect/internal/queries"
	"icatdirect/internal/repository/postgres"
	"icatdirect/internal/service/listing"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the persistent flags
type options struct {
	conn    postgres.ConnectionDescriptor
	user    string
	zone    string
	timeout time.Duration
	workers int
	verbose bool
}

// openService connects to the catalog and builds the listing service.
// The returned func releases the connection. Replaced in tests.
var openService = func(ctx context.Context, opts *options, logger *slog.Logger) (services.ListingService, func(), error) {
	catalog, err := queries.Load()
	if err != nil {
		return nil, nil, err
	}

	pool, err := postgres.CreateConnectionPool(ctx, opts.conn, int32(opts.workers+1))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to ICAT: %w", err)
	}

	executor := postgres.NewExecutor(&postgres.RepositoryConfig{
		DB:      pool,
		Catalog: catalog,
		Logger:  logger,
	})
	resolver := listing.NewPermissionResolver(executor, opts.workers)
	return listing.NewListingService(executor, resolver, logger), pool.Close, nil
}

// run opens the service for the duration of one command
func (o *options) run(cmd *cobra.Command, fn func(ctx context.Context, svc services.ListingService) (interface{}, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	svc, closeFn, err := openService(ctx, o, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func (o *options) folder(path string) services.FolderQuery {
	return services.FolderQuery{User: o.user, Zone: o.zone, Path: path}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "icatls",
		Short:        "List and count iRODS catalog entries as a user sees them",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.conn.Host, "host", cfg.ICATHost, "ICAT database host (ICAT_HOST)")
	flags.IntVar(&opts.conn.Port, "port", cfg.ICATPort, "ICAT database port (ICAT_PORT)")
	flags.StringVar(&opts.conn.Database, "db", cfg.ICATDatabase, "ICAT database name (ICAT_DB)")
	flags.StringVar(&opts.conn.User, "db-user", cfg.ICATUser, "database role (ICAT_USER)")
	flags.StringVar(&opts.conn.Password, "db-password", cfg.ICATPassword, "database password (ICAT_PASSWORD)")
	flags.StringVar(&opts.conn.SSLMode, "sslmode", cfg.ICATSSLMode, "libpq sslmode (ICAT_SSLMODE)")
	flags.StringVarP(&opts.user, "user", "u", os.Getenv("IRODS_USER"), "iRODS user to list as (IRODS_USER)")
	flags.StringVarP(&opts.zone, "zone", "z", os.Getenv("IRODS_ZONE"), "iRODS zone of the user (IRODS_ZONE)")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall deadline, 0 for none")
	flags.IntVar(&opts.workers, "workers", cfg.PermissionWorkers, "concurrent permission lookups")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every catalog query to stderr")

	root.AddCommand(
		newCountCmd(opts),
		newFoldersCmd(opts),
		newPathsCmd(opts),
		newListCmd(opts),
		newUUIDsCmd(opts),
	)
	return root
}

// count command
func newCountCmd(opts *options) *cobra.Command {
	count := &cobra.Command{
		Use:   "count",
		Short: "Count entries in a folder",
	}

	countOf := func(use, short string, fn func(ctx context.Context, svc services.ListingService, folder services.FolderQuery) (int64, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <folder>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, func(ctx context.Context, svc services.ListingService) (interface{}, error) {
					total, err := fn(ctx, svc, opts.folder(args[0]))
					return map[string]int64{"total": total}, err
				})
			},
		}
	}

	var infoTypes []string
	items := countOf("items", "Count files of the given info types plus all folders",
		func(ctx context.Context, svc services.ListingService, folder services.FolderQuery) (int64, error) {
			return svc.CountItemsInFolder(ctx, folder, infoTypes)
		})
	items.Flags().StringSliceVar(&infoTypes, "info-type", nil, "info types to include (repeatable)")

	var (
		badInfoTypes []string
		badChars     string
		badNames     []string
		badPaths     []string
	)
	bad := countOf("bad", "Count items with unsafe names or paths",
		func(ctx context.Context, svc services.ListingService, folder services.FolderQuery) (int64, error) {
			return svc.CountBadItemsInFolder(ctx, folder, badInfoTypes, badChars, badNames, badPaths)
		})
	bad.Flags().StringSliceVar(&badInfoTypes, "info-type", nil, "info types to include (repeatable)")
	bad.Flags().StringVar(&badChars, "bad-chars", "", "characters that may not appear in a name")
	bad.Flags().StringArrayVar(&badNames, "bad-name", nil, "reserved name (repeatable)")
	bad.Flags().StringArrayVar(&badPaths, "bad-path", nil, "reserved full path (repeatable)")

	count.AddCommand(
		countOf("files", "Count files directly in a folder",
			func(ctx context.Context, svc services.ListingService, folder services.FolderQuery) (int64, error) {
				return svc.CountFilesInFolder(ctx, folder)
			}),
		countOf("folders", "Count folders directly in a folder",
			func(ctx context.Context, svc services.ListingService, folder services.FolderQuery) (int64, error) {
				return svc.CountFoldersInFolder(ctx, folder)
			}),
		items,
		countOf("all", "Count everything below a folder",
			func(ctx context.Context, svc services.ListingService, folder services.FolderQuery) (int64, error) {
				return svc.CountAllItemsUnderFolder(ctx, folder)
			}),
		bad,
	)
	return count
}

// folders command
func newFoldersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "folders <folder>",
		Short: "List child folders with permissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc services.ListingService) (interface{}, error) {
				return svc.ListFoldersInFolder(ctx, opts.folder(args[0]))
			})
		},
	}
}

// paths command
func newPathsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "paths <folder>",
		Short: "Print the full path of every child",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc services.ListingService) (interface{}, error) {
				return svc.FolderPathListing(ctx, opts.folder(args[0]))
			})
		},
	}
}

// pageFlags are shared by the paged listings
type pageFlags struct {
	sortCol string
	sortDir string
	limit   uint
	offset  uint
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.sortCol, "sort-col", "base-name", "type, modify-ts, create-ts, data-size, base-name or full-path")
	cmd.Flags().StringVar(&p.sortDir, "sort-dir", "asc", "asc or desc")
	cmd.Flags().UintVar(&p.limit, "limit", config.DefaultPageLimit, "page size")
	cmd.Flags().UintVar(&p.offset, "offset", 0, "entries to skip")
}

func sortSpec(p pageFlags) models.SortSpec {
	return models.SortSpec{Column: models.SortColumn(p.sortCol), Order: models.SortOrder(p.sortDir)}
}

func pageOf(p pageFlags) models.Page {
	return models.Page{Limit: p.limit, Offset: p.offset}
}

// list command
func newListCmd(opts *options) *cobra.Command {
	var (
		page      pageFlags
		infoTypes []string
	)

	cmd := &cobra.Command{
		Use:   "list <folder>",
		Short: "Print one sorted page of a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc services.ListingService) (interface{}, error) {
				return svc.PagedFolderListing(ctx, opts.folder(args[0]), sortSpec(page), pageOf(page), infoTypes)
			})
		},
	}
	page.register(cmd)
	cmd.Flags().StringSliceVar(&infoTypes, "info-type", nil, "info types to include (repeatable)")
	return cmd
}

// uuids command
func newUUIDsCmd(opts *options) *cobra.Command {
	uuids := &cobra.Command{
		Use:   "uuids",
		Short: "Look up entries by UUID",
	}

	files := &cobra.Command{
		Use:   "files <uuid>...",
		Short: "Resolve data object UUIDs to paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc services.ListingService) (interface{}, error) {
				return svc.SelectFilesWithUUIDs(ctx, args)
			})
		},
	}

	folders := &cobra.Command{
		Use:   "folders <uuid>...",
		Short: "Resolve collection UUIDs to paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc services.ListingService) (interface{}, error) {
				return svc.SelectFoldersWithUUIDs(ctx, args)
			})
		},
	}

	var page pageFlags
	list := &cobra.Command{
		Use:   "list <uuid>...",
		Short: "Print one sorted page of the entries carrying the UUIDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, svc services.ListingService) (interface{}, error) {
				user := services.UserQuery{User: opts.user, Zone: opts.zone}
				return svc.PagedUUIDListing(ctx, user, sortSpec(page), pageOf(page), args)
			})
		},
	}
	page.register(list)

	uuids.AddCommand(files, folders, list)
	return uuids
}
