package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// EscrowAccount is the ledger-owned identity holding collateral.
	// TokenOwner is the only identity allowed to mint the token fixture and
	// seed native deposits.
	EscrowAccount string
	TokenOwner    string
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loanescrow"),
		MySQLUser: getenv("MYSQL_USER", "loanescrow"),
		MySQLPass: getenv("MYSQL_PASS", "loanescrow"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		EscrowAccount: getenv("ESCROW_ACCOUNT", "00000000000000000000000000e5c404"),
		TokenOwner:    getenv("TOKEN_OWNER", ""),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if !reHex32.MatchString(c.EscrowAccount) {
		return fmt.Errorf("invalid ESCROW_ACCOUNT %q: must be 32-char lowercase hex", c.EscrowAccount)
	}
	if c.TokenOwner == "" {
		return errors.New("missing TOKEN_OWNER")
	}
	if !reHex32.MatchString(c.TokenOwner) {
		return fmt.Errorf("invalid TOKEN_OWNER %q: must be 32-char lowercase hex", c.TokenOwner)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
