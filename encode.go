package folio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CommandType identifies the kind of a persisted ledger line.
type CommandType string

const (
	CmdCreate   CommandType = "create"
	CmdDeclare  CommandType = "declare"
	CmdTrade    CommandType = "trade"
	CmdStrategy CommandType = "strategy"
)

// tradeLine is the wire form of a Transaction.
type tradeLine struct {
	Command    CommandType     `json:"command"`
	Date       Date            `json:"date"`
	Security   string          `json:"security"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Commission decimal.Decimal `json:"commission"`
	Exchange   string          `json:"exchange,omitempty"`
	Source     string          `json:"source,omitempty"`
}

func (t tradeLine) Transaction() Transaction {
	source := t.Source
	if source == "" {
		source = SourceManual
	}
	return Transaction{
		Date:       t.Date,
		Security:   t.Security,
		Quantity:   t.Quantity,
		Price:      t.Price,
		Commission: t.Commission,
		Exchange:   t.Exchange,
		Source:     source,
	}
}

// createLine is the wire form of the portfolio header.
type createLine struct {
	Command   CommandType `json:"command"`
	Portfolio string      `json:"portfolio"`
	Created   Date        `json:"created"`
}

// declareLine attaches a display name to a security's ledger.
type declareLine struct {
	Command  CommandType `json:"command"`
	Security string      `json:"security"`
	Name     string      `json:"name,omitempty"`
}

// strategyLine is the wire form of a Strategy.
type strategyLine struct {
	Command    CommandType        `json:"command"`
	Name       string             `json:"name"`
	Amount     decimal.Decimal    `json:"amount"`
	Start      Date               `json:"start"`
	End        *Date              `json:"end,omitempty"`
	EveryDays  int                `json:"every"`
	Commission decimal.Decimal    `json:"commission"`
	Weights    map[string]Percent `json:"weights"`
}

// DecodePortfolio reads a portfolio from a JSONL stream: a header line, then
// declare, trade, and strategy lines in any order. Every decoded ledger is
// validated against short sales; a single violation rejects the whole decode.
func DecodePortfolio(name string, r io.Reader) (*Portfolio, error) {
	p := NewPortfolio(name, Date{})
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(raw, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: cannot identify command: %w", line, err)
		}

		switch identifier.Command {
		case CmdCreate:
			var c createLine
			if err := json.Unmarshal(raw, &c); err != nil {
				return nil, fmt.Errorf("line %d: invalid create: %w", line, err)
			}
			if c.Portfolio != "" {
				p.name = c.Portfolio
			}
			p.createdAt = c.Created
		case CmdDeclare:
			var d declareLine
			if err := json.Unmarshal(raw, &d); err != nil {
				return nil, fmt.Errorf("line %d: invalid declare: %w", line, err)
			}
			if ledger, ok := p.ledgers[d.Security]; ok {
				ledger.name = d.Name
			} else {
				p.ledgers[d.Security] = NewLedger(d.Security, d.Name)
			}
		case CmdTrade:
			var t tradeLine
			if err := json.Unmarshal(raw, &t); err != nil {
				return nil, fmt.Errorf("line %d: invalid trade: %w", line, err)
			}
			if t.Security == "" {
				return nil, fmt.Errorf("line %d: trade without a security", line)
			}
			p.Apply(t.Transaction())
		case CmdStrategy:
			var s strategyLine
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("line %d: invalid strategy: %w", line, err)
			}
			var end Date
			if s.End != nil {
				end = *s.End
			}
			strategy, err := NewStrategy(s.Name, s.Amount, s.Start, end, s.EveryDays, s.Commission, s.Weights)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if err := p.AddStrategy(strategy); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", line, identifier.Command)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Short-sale check is a decode-time batch precondition, once per ledger.
	for ledger := range p.Ledgers() {
		if err := ledger.Validate(); err != nil {
			return nil, fmt.Errorf("portfolio %s: %w", p.name, err)
		}
	}
	return p, nil
}

// EncodePortfolio writes a portfolio as a canonical JSONL stream: header,
// declares, strategies, then each ledger's transactions in append order.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	out := bufio.NewWriter(w)

	if err := writeLine(out, encodeCreate(p)); err != nil {
		return err
	}
	for ledger := range p.Ledgers() {
		if ledger.name == "" {
			continue
		}
		var line jsonObjectWriter
		line.Append("command", CmdDeclare)
		line.Append("security", ledger.ticker)
		line.Append("name", ledger.name)
		if err := writeLine(out, &line); err != nil {
			return err
		}
	}
	for _, s := range p.Strategies() {
		if err := writeLine(out, encodeStrategy(s)); err != nil {
			return err
		}
	}
	for ledger := range p.Ledgers() {
		for tx := range ledger.Transactions() {
			if err := writeLine(out, encodeTrade(tx)); err != nil {
				return err
			}
		}
	}
	return out.Flush()
}

func encodeCreate(p *Portfolio) *jsonObjectWriter {
	var line jsonObjectWriter
	line.Append("command", CmdCreate)
	line.Append("portfolio", p.name)
	line.Optional("created", p.createdAt)
	return &line
}

func encodeTrade(tx Transaction) *jsonObjectWriter {
	var line jsonObjectWriter
	line.Append("command", CmdTrade)
	line.Append("date", tx.Date)
	line.Append("security", tx.Security)
	line.Append("quantity", tx.Quantity)
	line.Append("price", tx.Price)
	line.Append("commission", tx.Commission)
	line.Optional("exchange", tx.Exchange)
	line.Optional("source", tx.Source)
	return &line
}

func encodeStrategy(s Strategy) *jsonObjectWriter {
	var line jsonObjectWriter
	line.Append("command", CmdStrategy)
	line.Append("name", s.Name)
	line.Append("amount", s.Amount)
	line.Append("start", s.Start)
	line.Optional("end", s.End)
	line.Append("every", s.EveryDays)
	line.Append("commission", s.Commission)
	line.Append("weights", s.weights)
	return &line
}

func writeLine(out *bufio.Writer, line *jsonObjectWriter) error {
	raw, err := line.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := out.Write(raw); err != nil {
		return err
	}
	return out.WriteByte('\n')
}
