package validator

import (
	"ctchen222/connect-n/internal/game"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Mark  game.PlayerMark `validate:"mark"`
	Level string          `validate:"loglevel"`
}

func TestCustomRules(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{name: "Valid", in: sample{Mark: game.PlayerO, Level: "debug"}},
		{name: "Empty mark", in: sample{Mark: game.None, Level: "info"}, wantErr: true},
		{name: "Lower-case mark", in: sample{Mark: "x", Level: "info"}, wantErr: true},
		{name: "Unknown level", in: sample{Mark: game.PlayerX, Level: "trace"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GetValidator().Struct(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
