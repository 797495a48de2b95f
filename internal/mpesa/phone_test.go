package mpesa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "local with leading zero", in: "0712345678", want: "254712345678"},
		{name: "bare nine digits", in: "712345678", want: "254712345678"},
		{name: "already international", in: "254712345678", want: "254712345678"},
		{name: "plus prefix", in: "+254712345678", want: "254712345678"},
		{name: "spaces and dashes", in: "0712 345-678", want: "254712345678"},
		{name: "unrecognized length passes through", in: "12345", want: "12345"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizePhone(tt.in))
		})
	}
}
