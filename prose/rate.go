package prose

import "github.com/billlayne/mailcomposer/format"

const stockRateNote = "We understand that seeing a premium change can be unexpected. " +
	"Rates across the industry are periodically adjusted to account for factors like the rising costs " +
	"of repairs and an increase in regional claims. We have ensured you still have all available discounts " +
	"and that your policy continues to provide the best protection for your investment. " +
	"Please feel free to call us to review your coverage options."

// RateChange is the before/after comparison shown when a premium goes up.
type RateChange struct {
	Title       string
	NewLabel    string
	Previous    string
	Current     string
	Delta       string
	NoteLabel   string
	Explanation string
}

// NewRateChange returns the comparison block for previous and current, or
// nil unless both parse as positive amounts and current is the larger.
// Decreases and unchanged premiums produce no block.
func NewRateChange(previous, current string) *RateChange {
	prev := format.ParseAmount(previous)
	curr := format.ParseAmount(current)
	if prev <= 0 || curr <= 0 || curr <= prev {
		return nil
	}
	return &RateChange{
		Previous: previous,
		Current:  current,
		Delta:    format.Currency(curr - prev),
	}
}

func quoteRateChange(previous, current, explanation string) *RateChange {
	rc := NewRateChange(previous, current)
	if rc == nil {
		return nil
	}
	rc.Title = "A Note On Your New Quote"
	rc.NewLabel = "New Quoted Premium"
	rc.NoteLabel = "An Explanation for the Change:"
	rc.Explanation = explanation
	return rc
}

func renewalRateChange(previous, current, explanation string) *RateChange {
	rc := NewRateChange(previous, current)
	if rc == nil {
		return nil
	}
	rc.Title = "Your Renewal Premium"
	rc.NewLabel = "New Premium"
	rc.NoteLabel = "A Note About Your Premium:"
	rc.Explanation = format.Or(explanation, stockRateNote)
	return rc
}
