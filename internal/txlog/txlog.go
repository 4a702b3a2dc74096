// Package txlog persists the append-only transaction history. Rows are never
// rewritten or deleted; every query is a scan in file order.
package txlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/passbook-dev/passbook/internal/model"
)

// Header is the schema marker row for transactions.txt, written once when
// the file is created.
const Header = "Account Number,Transaction Type,Amount,Date"

const (
	numFields  = 4
	dateFormat = "2006-01-02"
	colNumber  = 0
	colType    = 1
	colAmount  = 2
	colDate    = 3
)

// Log is an append-only transaction log backed by a single CSV file.
type Log struct {
	path string
	mu   sync.Mutex
}

// Open prepares the log at path, creating a header-only file if none exists.
func Open(path string) (*Log, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(Header+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("initializing transactions file: %w", err)
		}
	}
	return &Log{path: path}, nil
}

// Append writes one transaction row. The row is durable once Append returns.
func (l *Log) Append(tx model.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening transactions file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(MarshalTransaction(tx)); err != nil {
		return fmt.Errorf("writing transaction: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing transaction: %w", err)
	}
	return nil
}

// ListByAccount returns every transaction for the account in file order,
// which is creation order.
func (l *Log) ListByAccount(number string) ([]model.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening transactions file: %w", err)
	}
	defer f.Close()

	all, err := readTransactions(f)
	if err != nil {
		return nil, err
	}

	var out []model.Transaction
	for _, tx := range all {
		if tx.AccountNumber == number {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Recent returns the last n transactions for the account, oldest first.
func (l *Log) Recent(number string, n int) ([]model.Transaction, error) {
	txs, err := l.ListByAccount(number)
	if err != nil {
		return nil, err
	}
	if len(txs) > n {
		txs = txs[len(txs)-n:]
	}
	return txs, nil
}

func readTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// MarshalTransaction converts a Transaction to a CSV row. Transfer rows fold
// the counterparty into the type column ("Transfer to 654321").
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colNumber] = tx.AccountNumber
	typ := string(tx.Type)
	if tx.IsTransfer() {
		typ = fmt.Sprintf("%s %s", tx.Type, tx.Counterparty)
	}
	row[colType] = typ
	row[colAmount] = tx.Amount.StringFixed(2)
	row[colDate] = tx.Date.Format(dateFormat)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction, splitting the
// counterparty back out of transfer type values.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	typ := model.TransactionType(record[colType])
	var counterparty string
	switch {
	case strings.HasPrefix(record[colType], string(model.TypeTransferOut)+" "):
		counterparty = strings.TrimPrefix(record[colType], string(model.TypeTransferOut)+" ")
		typ = model.TypeTransferOut
	case strings.HasPrefix(record[colType], string(model.TypeTransferIn)+" "):
		counterparty = strings.TrimPrefix(record[colType], string(model.TypeTransferIn)+" ")
		typ = model.TypeTransferIn
	}

	return model.Transaction{
		AccountNumber: record[colNumber],
		Type:          typ,
		Counterparty:  counterparty,
		Amount:        amount,
		Date:          date,
	}, nil
}
