package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMonth(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2020-01", want: "Jan 2020"},
		{in: "2023-12", want: "Dec 2023"},
		{in: " 2021-06 ", want: "Jun 2021"},
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: "sometime", want: "sometime"},
		{in: "2020-13", want: "2020-13"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMonth(tt.in))
		})
	}
}

func TestFormatRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		current bool
		want    string
	}{
		{name: "closed range", start: "2020-01", end: "2022-03", want: "Jan 2020 - Mar 2022"},
		{name: "current ignores end", start: "2020-01", end: "2022-03", current: true, want: "Jan 2020 - Present"},
		{name: "current without end", start: "2021-09", current: true, want: "Sep 2021 - Present"},
		{name: "no dates", want: ""},
		{name: "start only", start: "2019-05", want: "May 2019"},
		{name: "end only", end: "2019-05", want: "May 2019"},
		{name: "current only", current: true, want: "Present"},
		{name: "unparseable passes through", start: "Summer 2018", end: "2019-01", want: "Summer 2018 - Jan 2019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRange(tt.start, tt.end, tt.current))
		})
	}
}
