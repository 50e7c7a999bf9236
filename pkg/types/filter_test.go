package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    StatusFilter
		wantErr bool
	}{
		{"", StatusAll, false},
		{"all", StatusAll, false},
		{"pending", StatusPending, false},
		{"done", StatusDone, false},
		{"finished", "", true},
		{"Done", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatusFilter(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSearchField(t *testing.T) {
	tests := []struct {
		in      string
		want    SearchField
		wantErr bool
	}{
		{"", FieldAll, false},
		{"all", FieldAll, false},
		{"uid", FieldUID, false},
		{"content", FieldContent, false},
		{"seq", FieldSequence, false},
		{"sequence", "", true},
		{"body", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSearchField(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
