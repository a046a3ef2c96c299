package catalogstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/vitrine/storefront/internal/core/domain"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Ping reads one id from table with an exact count. table defaults to users.
func (s *Store) Ping(ctx context.Context, table string) domain.PingResult {
	if table == "" {
		table = userTable
	}
	res := domain.PingResult{URL: s.url, TableName: table}

	var count int64
	err := errors.New("invalid table name")
	if tableNamePattern.MatchString(table) {
		err = s.call(ctx, table, "ping", func() error {
			var rows []map[string]any
			n, err := s.client.From(table).Select("id", "exact", false).Limit(1, "").ExecuteTo(&rows)
			count = int64(n)
			return err
		})
	}
	if err != nil {
		res.Status = "error"
		res.Message = fmt.Sprintf("Connection or access error on table '%s': %v", table, err)
		return res
	}

	res.Status = "success"
	res.Message = fmt.Sprintf("Connection OK. Table '%s' is accessible.", table)
	res.Connected = true
	res.TableAccessible = true
	res.RowCount = &count
	return res
}
