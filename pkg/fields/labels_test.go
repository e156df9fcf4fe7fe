package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func groupedDateDay(label string) Field {
	field := dateDimension(IntervalDay)
	field.Label = label
	field.Group = "date"
	return field
}

func TestDateGroupLabelUndefined(t *testing.T) {
	_, ok := DateGroupLabel(stringDimension)
	assert.False(t, ok)
	_, ok = DateGroupLabel(dateDimension(IntervalDay))
	assert.False(t, ok, "no group")
	metric := groupedDateDay("date day")
	metric.Kind = KindMetric
	_, ok = DateGroupLabel(metric)
	assert.False(t, ok)
}

func TestDateGroupLabelStripsTrailingInterval(t *testing.T) {
	label, ok := DateGroupLabel(groupedDateDay("date day"))
	assert.True(t, ok)
	assert.Equal(t, "date", label)

	label, _ = DateGroupLabel(groupedDateDay("month dayday month date year day"))
	assert.Equal(t, "month dayday month date year", label)
}

func TestDateGroupLabelFallsBackToFriendlyName(t *testing.T) {
	label, ok := DateGroupLabel(groupedDateDay("day date (day)"))
	assert.True(t, ok)
	assert.Equal(t, "Day date day", label)
}

func TestFriendlyName(t *testing.T) {
	cases := map[string]string{
		"order_date":     "Order date",
		"customerName":   "Customer name",
		"TOTAL REVENUE":  "Total revenue",
		"  first-order ": "First order",
		"":               "",
		"---":            "",
	}
	for input, want := range cases {
		assert.Equal(t, want, FriendlyName(input), input)
	}
}
