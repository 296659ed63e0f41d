// Package ofx flattens OFX/QFX statement downloads into grids so they can go
// through the same detection pipeline as spreadsheet exports.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/sift/internal/grid"
	"github.com/aclindsa/ofxgo"
)

// Columns is the header row written for every statement grid.
var Columns = []string{"Date", "Type", "Name", "Payee", "Memo", "Amount", "Check Number", "FITID"}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement is one account statement found in an OFX file.
type Statement struct {
	AccountID string
	Kind      string // "bank" or "creditcard"
	Grid      grid.Grid
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes drop the closing bracket of a bare opening tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Parse reads an OFX/QFX document and returns one grid per statement. Each
// grid starts with the Columns header row followed by one row per
// transaction in file order.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) ([]Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var statements []Statement

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		statements = append(statements, Statement{
			AccountID: string(stmt.BankAcctFrom.AcctID),
			Kind:      "bank",
			Grid:      p.statementGrid(stmt.BankTranList),
		})
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		statements = append(statements, Statement{
			AccountID: string(stmt.CCAcctFrom.AcctID),
			Kind:      "creditcard",
			Grid:      p.statementGrid(stmt.BankTranList),
		})
	}

	slog.Debug("Parsed OFX file", "statements", len(statements))

	return statements, nil
}

func (p *Parser) statementGrid(list *ofxgo.TransactionList) grid.Grid {
	header := make([]grid.Cell, len(Columns))
	for i, name := range Columns {
		header[i] = grid.Text(name)
	}
	g := grid.Grid{header}

	if list == nil {
		return g
	}

	for _, tx := range list.Transactions {
		g = append(g, p.transactionRow(tx))
	}
	return g
}

// transactionRow keeps the signed amount; OFX reports debits as negative.
func (p *Parser) transactionRow(tx ofxgo.Transaction) []grid.Cell {
	amount, _ := tx.TrnAmt.Float64()

	row := []grid.Cell{
		grid.Date(tx.DtPosted.Time),
		grid.Text(tx.TrnType.String()),
		grid.Text(string(tx.Name)),
		grid.Text(p.extractMerchantName(tx)),
		grid.Text(string(tx.Memo)),
		grid.Number(amount),
		grid.Text(string(tx.CheckNum)),
		grid.Text(string(tx.FiTID)),
	}
	return row
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// "MM/DD " date prefixes.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
