package syncer

import (
	"banksync-server/src/models"
	"fmt"
)

// ImportError is a failure to store a single remote transaction. It is logged
// and the import loop moves on.
type ImportError struct {
	Key models.DedupKey
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("importing transaction %s: %v", e.Key, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
