package pricing

// Plan describes one purchasable subscription option
type Plan struct {
	Days  int
	Stars int // Telegram Stars price; 0 means free
}

var (
	// Trial is the one-time free plan
	Trial = Plan{Days: 10, Stars: 0}
	// Monthly is the paid plan sold through Telegram Stars invoices
	Monthly = Plan{Days: 30, Stars: 129}
)
