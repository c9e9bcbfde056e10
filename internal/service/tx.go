package service

import (
	"database/sql"

	"gorm.io/gorm"
)

// txRunner is the one slice of *gorm.DB the stock-mutating services use,
// kept narrow so those flows can run against fakes in tests.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
