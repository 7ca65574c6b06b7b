package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"icatdirect/internal/config"
	"icatdirect/internal/domain/repositories"
	"icatdirect/internal/queries"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB       repositories.DBTX
	Catalog  *queries.Catalog
	Registry prometheus.Registerer
	Logger   *slog.Logger
}

// ConnectionDescriptor identifies an ICAT database
type ConnectionDescriptor struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// WithDefaults fills in the port and database name when unset
func (d ConnectionDescriptor) WithDefaults() ConnectionDescriptor {
	if d.Port == 0 {
		d.Port = config.DefaultICATPort
	}
	if d.Database == "" {
		d.Database = config.DefaultICATDatabase
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	return d
}

// URL renders the descriptor as a postgres connection URL
func (d ConnectionDescriptor) URL() string {
	d = d.WithDefaults()

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Database,
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}

	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// DescriptorFromConfig builds a descriptor from loaded configuration
func DescriptorFromConfig(cfg *config.Config) ConnectionDescriptor {
	return ConnectionDescriptor{
		Host:     cfg.ICATHost,
		Port:     cfg.ICATPort,
		Database: cfg.ICATDatabase,
		User:     cfg.ICATUser,
		Password: cfg.ICATPassword,
		SSLMode:  cfg.ICATSSLMode,
	}
}

// CreateConnectionPool creates a pgx connection pool for the ICAT database.
//
// Sessions are opened with default_transaction_read_only so that nothing
// issued through the pool can modify the catalog.
func CreateConnectionPool(ctx context.Context, desc ConnectionDescriptor, maxConns int32) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(desc.URL())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	if maxConns <= 0 {
		maxConns = config.DefaultMaxConns
	}
	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = min(config.DefaultMinConns, maxConns)

	poolConfig.ConnConfig.RuntimeParams["application_name"] = "icatdirect"
	poolConfig.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
