package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSqliteDSN(t *testing.T) {
	testCases := []struct {
		dsn  string
		want string
	}{
		{"blog.db", "blog.db?_foreign_keys=on"},
		{"file:blog.db?cache=shared", "file:blog.db?cache=shared&_foreign_keys=on"},
		{"blog.db?_foreign_keys=off", "blog.db?_foreign_keys=off"},
		{"blog.db?_fk=1", "blog.db?_fk=1"},
	}

	for _, tc := range testCases {
		t.Run(tc.dsn, func(t *testing.T) {
			assert.Equal(t, tc.want, sqliteDSN(tc.dsn))
		})
	}
}
