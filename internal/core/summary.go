package core

// CategoryAmount represents an amount aggregated by category label.
type CategoryAmount struct {
	Label  string
	Amount Money
}

// Summary is the derived aggregate over a filtered sequence of records.
type Summary struct {
	Total      Money
	ByCategory []CategoryAmount
}

// Summarize computes the total and per-category sums over records.
// Category order is first-seen within the input; blank categories land in
// the Uncategorized bucket. The chart collaborator consumes ByCategory
// as an ordered (label, value) series.
func Summarize(records []Record) Summary {
	var s Summary
	index := make(map[string]int, len(records))
	for _, r := range records {
		s.Total.Cents += r.Amount.Cents
		label := r.Category
		if label == "" {
			label = Uncategorized
		}
		i, seen := index[label]
		if !seen {
			index[label] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategoryAmount{Label: label})
			i = index[label]
		}
		s.ByCategory[i].Amount.Cents += r.Amount.Cents
	}
	return s
}
