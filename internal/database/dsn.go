package database

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Params are the connection settings shared by both sides.
type Params struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSL      bool
}

func (p Params) addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// MySQLDSN builds a go-sql-driver DSN. Temporal values are left as text so
// they pass through to the target unchanged.
func MySQLDSN(p Params) string {
	cfg := mysql.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.Net = "tcp"
	cfg.Addr = p.addr()
	cfg.DBName = p.Database
	cfg.Timeout = PingTimeout
	cfg.ReadTimeout = 5 * time.Minute
	if p.SSL {
		cfg.TLSConfig = "skip-verify"
	}
	return cfg.FormatDSN()
}

// PostgresDSN builds a lib/pq connection URL.
func PostgresDSN(p Params) string {
	q := url.Values{}
	if p.SSL {
		q.Set("sslmode", "require")
	} else {
		q.Set("sslmode", "disable")
	}
	q.Set("connect_timeout", strconv.Itoa(int(PingTimeout.Seconds())))

	u := url.URL{
		Scheme:   "postgres",
		Host:     p.addr(),
		Path:     "/" + p.Database,
		RawQuery: q.Encode(),
	}
	if p.Password != "" {
		u.User = url.UserPassword(p.User, p.Password)
	} else if p.User != "" {
		u.User = url.User(p.User)
	}
	return u.String()
}
