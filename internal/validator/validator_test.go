package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type showInput struct {
	StartTime   string          `validate:"required,time_of_day"`
	TicketPrice decimal.Decimal `validate:"ticket_price"`
}

type topUpInput struct {
	Amount decimal.Decimal `validate:"top_up_amount"`
}

type credentials struct {
	Password string `validate:"required,password"`
	Seats    int    `validate:"min=1"`
}

func TestTimeOfDayAndTicketPrice(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		input   showInput
		wantTag string
	}{
		{
			name:  "valid show",
			input: showInput{StartTime: "18:30", TicketPrice: decimal.RequireFromString("15.00")},
		},
		{
			name:    "malformed time",
			input:   showInput{StartTime: "25:00", TicketPrice: decimal.RequireFromString("15.00")},
			wantTag: "time_of_day",
		},
		{
			name:    "zero price",
			input:   showInput{StartTime: "18:30", TicketPrice: decimal.Zero},
			wantTag: "ticket_price",
		},
		{
			name:    "price over column precision",
			input:   showInput{StartTime: "18:30", TicketPrice: decimal.RequireFromString("10000")},
			wantTag: "ticket_price",
		},
		{
			name:    "price with three decimal places",
			input:   showInput{StartTime: "18:30", TicketPrice: decimal.RequireFromString("9.999")},
			wantTag: "ticket_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantTag == "" {
				require.NoError(t, err)
				return
			}

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.wantTag, errs[0].Tag())
		})
	}
}

func TestTopUpAmount(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(topUpInput{Amount: decimal.RequireFromString("50.25")}))
	assert.Error(t, v.Struct(topUpInput{Amount: decimal.RequireFromString("0.50")}))
	assert.Error(t, v.Struct(topUpInput{Amount: decimal.RequireFromString("10000.01")}))
}

func TestValidationMessage(t *testing.T) {
	v := NewValidator()

	err := v.Struct(credentials{Password: "weak", Seats: 0})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)

	messages := map[string]string{}
	for _, e := range errs {
		messages[e.Field()] = ValidationMessage(e)
	}

	assert.Contains(t, messages["Password"], "at least 8 characters long")
	assert.Equal(t, "must be at least 1", messages["Seats"])
}
