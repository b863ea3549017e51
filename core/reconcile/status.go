package reconcile

// Stock states of a both-present key on the primary pair.
const (
	StatusMissingData    = "missing_data"
	StatusOutOfStockBoth = "out_of_stock_both"
	StatusSourceOnly     = "source_only"
	StatusTargetOnly     = "target_only"
	StatusInStockBoth    = "in_stock_both"

	ValidationNegativeStock = "check_negative_stock"
	ValidationPass          = "pass"
)

// StockLine is the stock status of one key.
type StockLine struct {
	Key        Key      `json:"key"`
	Source     Quantity `json:"source"`
	Target     Quantity `json:"target"`
	Status     string   `json:"status"`
	Validation string   `json:"validation"`
}

// StockReport summarizes stock availability across keys present on both sides.
type StockReport struct {
	Lines      []StockLine    `json:"lines"`
	Status     map[string]int `json:"status"`
	Validation map[string]int `json:"validation"`
}

// StockStatus classifies both-present records by stock availability on the
// primary pair. Records missing from either side are skipped.
func StockStatus(records []JoinedRecord) StockReport {
	report := StockReport{
		Lines:      []StockLine{},
		Status:     map[string]int{},
		Validation: map[string]int{},
	}
	for _, rec := range records {
		if !rec.InSource || !rec.InTarget {
			continue
		}
		line := StockLine{
			Key:        rec.Key,
			Source:     rec.PrimarySource(),
			Target:     rec.PrimaryTarget(),
			Validation: ValidationPass,
		}
		s, t := line.Source.Value, line.Target.Value

		switch {
		case !line.Source.Valid || !line.Target.Valid:
			line.Status = StatusMissingData
		case s <= 0 && t <= 0:
			line.Status = StatusOutOfStockBoth
		case t <= 0:
			line.Status = StatusSourceOnly
		case s <= 0:
			line.Status = StatusTargetOnly
		default:
			line.Status = StatusInStockBoth
		}
		if s < 0 || t < 0 {
			line.Validation = ValidationNegativeStock
		}

		report.Lines = append(report.Lines, line)
		report.Status[line.Status]++
		report.Validation[line.Validation]++
	}
	return report
}
