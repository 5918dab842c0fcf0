package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Jane Q. Public", want: "Jane_Q._Public_CV.pdf"},
		{in: "  Jane   Doe  ", want: "Jane_Doe_CV.pdf"},
		{in: "Jane\tDoe", want: "Jane_Doe_CV.pdf"},
		{in: "", want: DefaultFilename},
		{in: "   ", want: DefaultFilename},
		{in: "AC/DC", want: "AC_DC_CV.pdf"},
		{in: `back\slash`, want: "back_slash_CV.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.in))
		})
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "cv.pdf"},
		{name: "Jane_Q._Public_CV.pdf"},
		{name: "..pdf"},
		{name: "", wantErr: true},
		{name: ".", wantErr: true},
		{name: "..", wantErr: true},
		{name: "a/b.pdf", wantErr: true},
		{name: "../escape.pdf", wantErr: true},
		{name: "/abs.pdf", wantErr: true},
		{name: `a\b.pdf`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilename)
				return
			}
			assert.NoError(t, err)
		})
	}
}
