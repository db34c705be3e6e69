package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SourceManual marks a transaction entered by hand. Machine-generated
// transactions carry the name of the strategy that emitted them instead.
const SourceManual = "Manual"

// Transaction is a single signed-quantity trade of one security.
// It is immutable once created; a negative quantity denotes a sale.
type Transaction struct {
	Date       Date
	Security   string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Commission decimal.Decimal
	Exchange   string
	Source     string
}

// NewTransaction creates a manual transaction.
func NewTransaction(on Date, security string, quantity, price, commission decimal.Decimal, exchange string) Transaction {
	return Transaction{
		Date:       on,
		Security:   security,
		Quantity:   quantity,
		Price:      price,
		Commission: commission,
		Exchange:   exchange,
		Source:     SourceManual,
	}
}

// IsSale reports whether the transaction reduces the position.
func (t Transaction) IsSale() bool { return t.Quantity.IsNegative() }

// Gross returns quantity × price, the traded amount before commission.
func (t Transaction) Gross() decimal.Decimal { return t.Quantity.Mul(t.Price) }

// Equal reports whether two transactions are identical.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date &&
		t.Security == o.Security &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Commission.Equal(o.Commission) &&
		t.Exchange == o.Exchange &&
		t.Source == o.Source
}

func (t Transaction) String() string {
	verb := "buy"
	if t.IsSale() {
		verb = "sell"
	}
	return fmt.Sprintf("%s %s %s %s @ %s", t.Date, verb, t.Quantity.Abs(), t.Security, t.Price)
}
