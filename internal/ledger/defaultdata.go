package ledger

import (
	_ "embed"
	"strings"
)

//go:embed defaultdata.csv
var defaultCSV string

// DefaultDataset returns the bundled sample ledger. It is used on first
// run and whenever an upload is rejected for missing columns.
func DefaultDataset() []Transaction {
	res, err := Load(strings.NewReader(defaultCSV))
	if err != nil {
		// the embedded file is fixed at build time; a parse failure here
		// is a programming error
		panic("ledger: embedded default dataset invalid: " + err.Error())
	}
	return res.Transactions
}
