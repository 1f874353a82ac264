package schema

import "strings"

// Class is the semantic type assigned to a column from its name.
type Class int

const (
	// ClassText is the default for anything no rule claims.
	ClassText Class = iota
	// ClassIdentifier columns join tables and are always coerced to string,
	// even when a source file stored them as numbers.
	ClassIdentifier
	// ClassNumeric columns are coerced cell-by-cell to decimals.
	ClassNumeric
	// ClassDate columns are coerced cell-by-cell to dates.
	ClassDate
	// ClassCategorical columns get their vocabulary standardized.
	ClassCategorical
)

func (c Class) String() string {
	switch c {
	case ClassIdentifier:
		return "identifier"
	case ClassNumeric:
		return "numeric"
	case ClassDate:
		return "date"
	case ClassCategorical:
		return "categorical"
	default:
		return "text"
	}
}

// Classifier maps a column name to its Class. Exact names win over keyword
// substrings, and identifier rules win over everything, so a column like
// 관리번호 is never mis-typed as numeric just because a keyword happens to
// match part of its name.
type Classifier struct {
	identifiers  map[string]struct{}
	categoricals map[string]struct{}
	numericHints []string
	dateHints    []string
}

// NewClassifier builds a classifier from explicit name sets and keyword
// lists. All matching is case-insensitive on the lowered column name.
func NewClassifier(identifiers, categoricals, numericHints, dateHints []string) *Classifier {
	c := &Classifier{
		identifiers:  make(map[string]struct{}, len(identifiers)),
		categoricals: make(map[string]struct{}, len(categoricals)),
	}
	for _, n := range identifiers {
		c.identifiers[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	for _, n := range categoricals {
		c.categoricals[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	for _, k := range numericHints {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			c.numericHints = append(c.numericHints, k)
		}
	}
	for _, k := range dateHints {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			c.dateHints = append(c.dateHints, k)
		}
	}
	return c
}

// DefaultClassifier covers the stock AS datasets. The keyword lists mirror
// what the source spreadsheets actually use; deployments with exotic headers
// override them through configuration.
func DefaultClassifier() *Classifier {
	return NewClassifier(
		[]string{ColAssetID, ColTechnicianID, ColIssuerID, ColEmployeeID},
		[]string{ColMaintType},
		[]string{"금액", "시간", "비용", "단가", "취득가", ColRepairCost},
		[]string{"일자", "날짜", "date"},
	)
}

// Classify assigns a Class to a column name.
func (c *Classifier) Classify(name string) Class {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if _, ok := c.identifiers[lowered]; ok {
		return ClassIdentifier
	}
	if _, ok := c.categoricals[lowered]; ok {
		return ClassCategorical
	}
	for _, k := range c.numericHints {
		if strings.Contains(lowered, k) {
			return ClassNumeric
		}
	}
	for _, k := range c.dateHints {
		if strings.Contains(lowered, k) {
			return ClassDate
		}
	}
	return ClassText
}
