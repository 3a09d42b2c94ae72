// Package allocation spreads the free capacity of a new donation or project
// over the open entities of the other kind, oldest first.
package allocation

import (
	"slices"
	"time"

	"fundledger/internal/domain"
)

// Distribute invests funds into opened in ascending creation order until
// funds is exhausted or no candidates are left. It mutates funds and every
// touched candidate in memory and returns funds. Entities that become full are
// closed with the timestamp at.
func Distribute[F, I domain.FundedEntity](funds F, opened []I, at time.Time) F {
	if len(opened) == 0 {
		return funds
	}
	ordered := slices.Clone(opened)
	slices.SortStableFunc(ordered, func(a, b I) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})

	for _, item := range ordered {
		fundsLeft := funds.Remaining()
		itemLeft := item.Remaining()
		if fundsLeft >= itemLeft {
			funds.Invest(itemLeft)
			item.FillUp()
			Close(item, at)
			if fundsLeft == itemLeft {
				Close(funds, at)
				break
			}
			continue
		}
		item.Invest(fundsLeft)
		funds.FillUp()
		Close(funds, at)
		break
	}
	return funds
}

// Close marks e fully invested. A close date already set is kept.
func Close[E domain.FundedEntity](e E, at time.Time) E {
	e.MarkClosed(at)
	return e
}
