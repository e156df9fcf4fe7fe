package fields

// FieldKind discriminates the field union.
type FieldKind string

const (
	KindDimension        FieldKind = "dimension"
	KindMetric           FieldKind = "metric"
	KindTableCalculation FieldKind = "table_calculation"
)

// FieldType is the value type of a field.
type FieldType string

const (
	TypeString    FieldType = "string"
	TypeNumber    FieldType = "number"
	TypeDate      FieldType = "date"
	TypeTimestamp FieldType = "timestamp"
	TypeBoolean   FieldType = "boolean"
)

// TimeInterval is the bucketing unit of a date dimension.
type TimeInterval string

const (
	IntervalRaw         TimeInterval = "RAW"
	IntervalMillisecond TimeInterval = "MILLISECOND"
	IntervalSecond      TimeInterval = "SECOND"
	IntervalMinute      TimeInterval = "MINUTE"
	IntervalHour        TimeInterval = "HOUR"
	IntervalDay         TimeInterval = "DAY"
	IntervalWeek        TimeInterval = "WEEK"
	IntervalMonth       TimeInterval = "MONTH"
	IntervalQuarter     TimeInterval = "QUARTER"
	IntervalYear        TimeInterval = "YEAR"
)

var intervalLabels = map[TimeInterval]string{
	IntervalRaw:         "Raw",
	IntervalMillisecond: "Millisecond",
	IntervalSecond:      "Second",
	IntervalMinute:      "Minute",
	IntervalHour:        "Hour",
	IntervalDay:         "Day",
	IntervalWeek:        "Week",
	IntervalMonth:       "Month",
	IntervalQuarter:     "Quarter",
	IntervalYear:        "Year",
}

// Label returns the display name of the interval, or "" when unknown.
func (i TimeInterval) Label() string {
	return intervalLabels[i]
}

// Field is a dimension, metric or table calculation. TimeInterval and Group
// only carry meaning for dimensions.
type Field struct {
	Kind         FieldKind    `json:"kind" yaml:"kind"`
	Type         FieldType    `json:"type" yaml:"type"`
	Name         string       `json:"name" yaml:"name"`
	Table        string       `json:"table,omitempty" yaml:"table,omitempty"`
	Label        string       `json:"label" yaml:"label"`
	TimeInterval TimeInterval `json:"time_interval,omitempty" yaml:"time_interval,omitempty"`
	Group        string       `json:"group,omitempty" yaml:"group,omitempty"`
}

// ID returns the table-qualified field id.
func (f Field) ID() string {
	if f.Table == "" {
		return f.Name
	}
	return f.Table + "_" + f.Name
}

// IsDate reports whether the field holds dates or timestamps.
func (f Field) IsDate() bool {
	return f.Type == TypeDate || f.Type == TypeTimestamp
}

// IsDateDimension reports whether the field is a date-typed dimension.
func (f Field) IsDateDimension() bool {
	return f.Kind == KindDimension && f.IsDate()
}
