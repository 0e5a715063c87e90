package core

import "fmt"

// Cents is a money amount in integer minor units (cents). Fine rates,
// fine balances, and payments are all kept in Cents so that accrual and
// reconciliation never suffer floating point drift.
type Cents int64

// String formats the amount as a dollar string, e.g. "2.50".
func (c Cents) String() string {
	sign := ""
	v := c
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
