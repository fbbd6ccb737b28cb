package mongo

import (
	"fmt"
	"net"
	"time"
)

// Config represents the configuration for the database.
// ConnectionURL takes precedence; otherwise the URI is built from Host and Port.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URL"`                                  // ConnectionURL is the full URL of the database.
	Host            string        `env:"DB_HOST" envDefault:"localhost"`               // Host is used when ConnectionURL is empty.
	Port            int           `env:"DB_PORT" envDefault:"27017"`                   // Port is used when ConnectionURL is empty.
	Database        string        `env:"DB_DATABASE" envDefault:"files_manager"`       // Database is the database name.
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout is the timeout for connecting to the database.
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`       // MaxPoolSize is the maximum number of connections in the connection pool.
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`         // MinPoolSize is the minimum number of connections in the connection pool.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime is the maximum time that a connection can remain idle in the connection pool.
	RetryWrites     bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`       // RetryWrites specifies whether to retry write operations.
	RetryReads      bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`        // RetryReads specifies whether to retry read operations.
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`        // RetryAttempts is the number of connection attempts.
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`       // RetryInterval is the pause between connection attempts.
}

// URI returns the connection URI for the config.
func (c Config) URI() string {
	if c.ConnectionURL != "" {
		return c.ConnectionURL
	}
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 27017
	}
	return fmt.Sprintf("mongodb://%s", net.JoinHostPort(host, fmt.Sprint(port)))
}
