package fields

import "time"

// FilterOperator names a filter comparison.
type FilterOperator string

const (
	OperatorEquals       FilterOperator = "equals"
	OperatorNotEquals    FilterOperator = "notEquals"
	OperatorIsNull       FilterOperator = "isNull"
	OperatorNotNull      FilterOperator = "notNull"
	OperatorGreaterThan  FilterOperator = "greaterThan"
	OperatorLessThan     FilterOperator = "lessThan"
	OperatorInThePast    FilterOperator = "inThePast"
	OperatorInTheNext    FilterOperator = "inTheNext"
	OperatorInTheCurrent FilterOperator = "inTheCurrent"
	OperatorInBetween    FilterOperator = "inBetween"
)

// UnitOfTime is the unit used by relative date operators.
type UnitOfTime string

const UnitDays UnitOfTime = "days"

// DateFilterSettings configures relative date operators.
type DateFilterSettings struct {
	UnitOfTime UnitOfTime `json:"unitOfTime" yaml:"unit_of_time"`
	Completed  bool       `json:"completed" yaml:"completed"`
}

// FilterTarget points a rule at a field.
type FilterTarget struct {
	FieldID string `json:"fieldId" yaml:"field_id"`
}

// FilterRule is a single filter condition.
type FilterRule struct {
	ID       string              `json:"id" yaml:"id"`
	Target   FilterTarget        `json:"target" yaml:"target"`
	Operator FilterOperator      `json:"operator" yaml:"operator"`
	Values   []any               `json:"values" yaml:"values"`
	Settings *DateFilterSettings `json:"settings,omitempty" yaml:"settings,omitempty"`
	Disabled bool                `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// DateFormat is the layout of default date values.
const DateFormat = "2006-01-02"

// FilterRuleWithDefaultValue returns rule with values filled in. Supplied
// values (even an empty, non-nil slice) are kept as given. With nil values,
// date fields get one default date derived from now in loc, relative date
// operators get 1 day, null checks get nothing and other fields get an empty
// list.
func FilterRuleWithDefaultValue(field Field, rule FilterRule, values []any, now time.Time, loc *time.Location) FilterRule {
	out := rule
	out.Target.FieldID = targetID(field, rule)
	if values != nil {
		out.Values = append([]any{}, values...)
		return out
	}
	out.Values = []any{}
	switch rule.Operator {
	case OperatorIsNull, OperatorNotNull:
		return out
	}
	if !field.IsDate() {
		return out
	}
	switch rule.Operator {
	case OperatorInThePast, OperatorInTheNext:
		out.Values = []any{1}
		out.Settings = &DateFilterSettings{UnitOfTime: UnitDays, Completed: false}
	default:
		out.Values = []any{DefaultDate(field.TimeInterval, now, loc).Format(DateFormat)}
	}
	return out
}

// DefaultDate truncates now (in loc) to the start of the interval. Weeks start
// on Monday; unknown intervals resolve to today.
func DefaultDate(interval TimeInterval, now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	year, month, day := local.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, loc)
	switch interval {
	case IntervalWeek:
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset)
	case IntervalMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case IntervalQuarter:
		first := time.Month((int(month)-1)/3*3 + 1)
		return time.Date(year, first, 1, 0, 0, 0, 0, loc)
	case IntervalYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return today
	}
}

func targetID(field Field, rule FilterRule) string {
	if rule.Target.FieldID != "" {
		return rule.Target.FieldID
	}
	return field.ID()
}
