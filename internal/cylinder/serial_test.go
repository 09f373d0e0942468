package cylinder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSerial(t *testing.T) {
	tests := []struct {
		name    string
		highest int64
		found   bool
		want    string
	}{
		{name: "Empty", want: "CYL1001"},
		{name: "AfterHighest", highest: 1005, found: true, want: "CYL1006"},
		{name: "BelowFirst", highest: 7, found: true, want: "CYL8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextSerial(tt.highest, tt.found))
		})
	}
}

func TestSerialNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{in: "CYL1001", want: 1001, wantOK: true},
		{in: "CYL0", want: 0, wantOK: true},
		{in: "cyl1001"},
		{in: "CYL"},
		{in: "CYL12a"},
		{in: "XCYL12"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SerialNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
