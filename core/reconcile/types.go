package reconcile

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"

	"inventory-reconciler/core/mapping"
)

// Quantity is a normalized integer that may be absent. Absent is distinct from zero.
type Quantity struct {
	Value int64
	Valid bool
}

// Some returns a present quantity.
func Some(v int64) Quantity {
	return Quantity{Value: v, Valid: true}
}

// OrZero returns the value, treating absent as 0.
func (q Quantity) OrZero() int64 {
	if !q.Valid {
		return 0
	}
	return q.Value
}

// String renders the quantity as a plain integer, or "" when absent.
func (q Quantity) String() string {
	if !q.Valid {
		return ""
	}
	return strconv.FormatInt(q.Value, 10)
}

// MarshalJSON encodes an absent quantity as null.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(q.Value, 10)), nil
}

// UnmarshalJSON decodes a number or null.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = Quantity{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*q = Some(v)
	return nil
}

// equalQuantities reports whether a compare pair matches. Absent on both sides is
// equal; otherwise absent counts as zero and values must be identical.
func equalQuantities(a, b Quantity) bool {
	if !a.Valid && !b.Valid {
		return true
	}
	return a.OrZero() == b.OrZero()
}

// Key is the canonical 1 or 2 component item identifier.
type Key []string

// String joins the components for display, e.g. "A1 | ACC-9".
func (k Key) String() string {
	return strings.Join(k, " | ")
}

// Compare orders keys component by component.
func (k Key) Compare(other Key) int {
	return slices.Compare(k, other)
}

// MarshalJSON encodes the key in its display form.
func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// id encodes the key for map lookups. Components are length prefixed, so no
// cell content can make two different keys collide.
func (k Key) id() string {
	var b strings.Builder
	for _, c := range k {
		b.WriteString(strconv.Itoa(len(c)))
		b.WriteByte(':')
		b.WriteString(c)
	}
	return b.String()
}

// Classification labels a joined record.
type Classification string

const (
	// Match means the key is on both sides and every compare pair is equal.
	Match Classification = "MATCH"
	// QtyMismatch means the key is on both sides and at least one pair differs.
	QtyMismatch Classification = "QTY_MISMATCH"
	// OnlyInSource means the key exists only in the source table.
	OnlyInSource Classification = "ONLY_IN_SOURCE"
	// OnlyInTarget means the key exists only in the target table.
	OnlyInTarget Classification = "ONLY_IN_TARGET"
)

// JoinedRecord is the outer join outcome for one key.
type JoinedRecord struct {
	// Key identifies the item.
	Key Key `json:"key"`

	// Classification is the record's single label.
	Classification Classification `json:"classification"`

	// InSource and InTarget report presence on each side.
	InSource bool `json:"in_source"`
	InTarget bool `json:"in_target"`

	// SourceValues and TargetValues are aligned with the mapping's compare pairs.
	// Values are absent for the side the key is missing from.
	SourceValues []Quantity `json:"source_values"`
	TargetValues []Quantity `json:"target_values"`

	// SourceAttrs and TargetAttrs hold the passthrough columns of each side.
	SourceAttrs map[string]string `json:"source_attrs,omitempty"`
	TargetAttrs map[string]string `json:"target_attrs,omitempty"`
}

// PrimarySource returns the source quantity of the primary pair.
func (r JoinedRecord) PrimarySource() Quantity {
	return r.SourceValues[0]
}

// PrimaryTarget returns the target quantity of the primary pair.
func (r JoinedRecord) PrimaryTarget() Quantity {
	return r.TargetValues[0]
}

// PrimaryDiff returns target minus source for the primary pair, absent as 0.
func (r JoinedRecord) PrimaryDiff() int64 {
	return r.PrimaryTarget().OrZero() - r.PrimarySource().OrZero()
}

// Statistics summarizes a reconciliation run.
type Statistics struct {
	// SourceRows and TargetRows count keys after aggregation.
	SourceRows int `json:"source_rows"`
	TargetRows int `json:"target_rows"`

	// Per classification counts. They sum to the size of the key union.
	Matches      int `json:"matches"`
	Mismatches   int `json:"mismatches"`
	OnlyInSource int `json:"only_in_source"`
	OnlyInTarget int `json:"only_in_target"`

	// Availability set sizes.
	SourceInTargetOut int `json:"source_in_target_out"`
	TargetInSourceOut int `json:"target_in_source_out"`

	// Primary quantity totals over all keys.
	TotalSourceQuantity int64 `json:"total_source_quantity"`
	TotalTargetQuantity int64 `json:"total_target_quantity"`

	// SumAbsMismatch is the sum of |primary diff| over QTY_MISMATCH records.
	SumAbsMismatch int64 `json:"sum_abs_mismatch"`
	// MeanAbsMismatch is nil when there are no mismatches.
	MeanAbsMismatch *float64 `json:"mean_abs_mismatch"`

	// Rows dropped because the key was blank.
	SourceDiscardedRows int `json:"source_discarded_rows"`
	TargetDiscardedRows int `json:"target_discarded_rows"`

	// Quantity cells that were not numbers and were counted as 0.
	SourceParseAnomalies int `json:"source_parse_anomalies"`
	TargetParseAnomalies int `json:"target_parse_anomalies"`

	// Input lines the reader skipped as malformed.
	SourceMalformedRows int `json:"source_malformed_rows"`
	TargetMalformedRows int `json:"target_malformed_rows"`
}

// Total returns the number of distinct keys across both tables.
func (s Statistics) Total() int {
	return s.Matches + s.Mismatches + s.OnlyInSource + s.OnlyInTarget
}

// SetName identifies one of the derived result sets.
type SetName string

const (
	SetMismatches        SetName = "mismatches"
	SetOnlyInSource      SetName = "only_in_source"
	SetOnlyInTarget      SetName = "only_in_target"
	SetSourceInTargetOut SetName = "source_in_target_out"
	SetTargetInSourceOut SetName = "target_in_source_out"
)

// SetNames lists the result sets in presentation order.
var SetNames = []SetName{
	SetMismatches,
	SetOnlyInSource,
	SetOnlyInTarget,
	SetSourceInTargetOut,
	SetTargetInSourceOut,
}

// Result is the immutable output of one reconciliation.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// CompletedAt is when the join finished.
	CompletedAt time.Time `json:"completed_at"`

	// Mapping is the configuration the run used.
	Mapping mapping.Mapping `json:"mapping"`

	Mismatches        []JoinedRecord `json:"mismatches"`
	OnlyInSource      []JoinedRecord `json:"only_in_source"`
	OnlyInTarget      []JoinedRecord `json:"only_in_target"`
	SourceInTargetOut []JoinedRecord `json:"source_in_target_out"`
	TargetInSourceOut []JoinedRecord `json:"target_in_source_out"`

	Statistics Statistics `json:"statistics"`

	// Stock is the availability report over keys present on both sides.
	Stock StockReport `json:"stock_status"`
}

// Set returns the records of the named set.
func (r *Result) Set(name SetName) ([]JoinedRecord, bool) {
	switch name {
	case SetMismatches:
		return r.Mismatches, true
	case SetOnlyInSource:
		return r.OnlyInSource, true
	case SetOnlyInTarget:
		return r.OnlyInTarget, true
	case SetSourceInTargetOut:
		return r.SourceInTargetOut, true
	case SetTargetInSourceOut:
		return r.TargetInSourceOut, true
	default:
		return nil, false
	}
}
