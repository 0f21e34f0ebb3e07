package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type listQuery struct {
	Categories []string `validate:"omitempty,dive,activity_categories"`
	EventTypes []string `validate:"omitempty,dive,event_type_codes"`
	Portal     string   `validate:"omitempty,portal"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	RegisterWith(v)

	tests := []struct {
		name    string
		in      listQuery
		wantErr bool
	}{
		{"empty", listQuery{}, false},
		{"categories", listQuery{Categories: []string{"security", "Document,access"}}, false},
		{"trailing comma", listQuery{Categories: []string{"security,"}}, false},
		{"unknown category", listQuery{Categories: []string{"security,billing"}}, true},
		{"event types", listQuery{EventTypes: []string{"LOGIN_SUCCESS,password_changed"}}, false},
		{"malformed event type", listQuery{EventTypes: []string{"LOGIN SUCCESS"}}, true},
		{"event type injection", listQuery{EventTypes: []string{"X');--"}}, true},
		{"portal", listQuery{Portal: "lender"}, false},
		{"unknown portal", listQuery{Portal: "backoffice"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
