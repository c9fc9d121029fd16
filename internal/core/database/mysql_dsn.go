package database

import (
	"fmt"
	"net/url"
	"strings"
)

// JDBC / Navicat 风格参数 → go-sql-driver 参数
var jdbcParams = map[string]func(q url.Values, v string){
	"characterEncoding": func(q url.Values, v string) {
		if q.Get("charset") == "" {
			q.Set("charset", v)
		}
	},
	"useUnicode":           func(url.Values, string) {},
	"zeroDateTimeBehavior": func(url.Values, string) {},
	"useSSL": func(q url.Values, v string) {
		switch strings.ToLower(v) {
		case "true", "1":
			q.Set("tls", "true")
		case "skip-verify", "preferred":
			q.Set("tls", strings.ToLower(v))
		default:
			q.Set("tls", "false")
		}
	},
	"serverTimezone": func(q url.Values, v string) { q.Set("loc", v) },
}

// normalizeMySQLDSN 把 mysql:// 或 jdbc:mysql:// 形式改写为 user:pass@tcp(host)/db?...；
// 已是 go-sql-driver 语法的原样返回
func normalizeMySQLDSN(input, userOverride, passOverride string) string {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return in
	}
	u, err := url.Parse(in)
	if err != nil {
		return in // 交给驱动报错
	}

	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	q := u.Query()
	for key, dst := range map[string]*string{"user": &user, "password": &pass} {
		if v := q.Get(key); v != "" {
			*dst = v
		}
		q.Del(key)
	}
	if userOverride != "" {
		user = userOverride
	}
	if passOverride != "" {
		pass = passOverride
	}

	for key, apply := range jdbcParams {
		if !q.Has(key) {
			continue
		}
		v := q.Get(key)
		q.Del(key)
		if v != "" {
			apply(q, v)
		}
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}

// maskDSN 隐藏 user:pass@ 中的密码
func maskDSN(dsn string) string {
	at := strings.Index(dsn, "@")
	if at <= 0 {
		return dsn
	}
	if colon := strings.Index(dsn[:at], ":"); colon > 0 {
		return dsn[:colon+1] + "****" + dsn[at:]
	}
	return dsn
}
