package types

import "errors"

// Config holds the parameters for Store.Open.
type Config struct {
	// DataDir is the directory holding the database file. Created if
	// missing; "." when empty.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// DBFile is the database file name inside DataDir. Defaults to
	// DefaultDBFile when empty.
	DBFile string `json:"db_file" yaml:"db_file"`
}

// DefaultDBFile is the database file name used when Config.DBFile is empty.
const DefaultDBFile = "binder.db"

// ErrDBFileInvalid is returned by Validate for path-traversing file names.
var ErrDBFileInvalid = errors.New("db file must be a bare file name")

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	for _, r := range c.DBFile {
		if r == '/' || r == '\\' {
			return ErrDBFileInvalid
		}
	}
	return nil
}
