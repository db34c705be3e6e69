package folio

// Holding is one row of a point-in-time composition report: the reconstructed
// position of a single security as of a date.
type Holding struct {
	Ticker       string
	Name         string
	Quantity     float64
	AveragePrice float64
	LastTradeOn  Date
}

// CompositionReport is the full composition of a portfolio as of a date.
type CompositionReport struct {
	Portfolio string
	Date      Date
	Holdings  []Holding
}
