package domain

import "testing"

func money(amount float64) *Money {
	return &Money{Amount: amount, Currency: "EUR"}
}

func TestMenuItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    MenuItem
		wantErr bool
	}{
		{
			name: "priced item without options",
			item: MenuItem{
				Restaurant: RestaurantIDPlazaEurest,
				Name:       "Gulasch",
				Price:      money(9.90),
				Options:    []MenuItemOption{},
			},
		},
		{
			name: "nil price with options",
			item: MenuItem{
				Restaurant: RestaurantIDSaiCookArt,
				Name:       "Curry",
				Options: []MenuItemOption{
					{Name: "Scharf", Price: Money{Amount: 9, Currency: "EUR"}},
				},
			},
		},
		{
			name: "price and options together",
			item: MenuItem{
				Restaurant: RestaurantIDSaiCookArt,
				Name:       "Curry",
				Price:      money(8.50),
				Options: []MenuItemOption{
					{Name: "Scharf", Price: Money{Amount: 9, Currency: "EUR"}},
				},
			},
			wantErr: true,
		},
		{
			name: "neither price nor options",
			item: MenuItem{
				Restaurant: RestaurantIDPlazaEurest,
				Name:       "Gulasch",
			},
			wantErr: true,
		},
		{
			name: "unknown restaurant",
			item: MenuItem{
				Restaurant: "burger-palace",
				Name:       "Gulasch",
				Price:      money(9.90),
			},
			wantErr: true,
		},
		{
			name: "empty name",
			item: MenuItem{
				Restaurant: RestaurantIDPlazaEurest,
				Price:      money(9.90),
			},
			wantErr: true,
		},
		{
			name: "negative price",
			item: MenuItem{
				Restaurant: RestaurantIDPlazaEurest,
				Name:       "Gulasch",
				Price:      money(-1),
			},
			wantErr: true,
		},
		{
			name: "lowercase currency",
			item: MenuItem{
				Restaurant: RestaurantIDPlazaEurest,
				Name:       "Gulasch",
				Price:      &Money{Amount: 9.90, Currency: "eur"},
			},
			wantErr: true,
		},
		{
			name: "option without name",
			item: MenuItem{
				Restaurant: RestaurantIDSaiCookArt,
				Name:       "Curry",
				Options: []MenuItemOption{
					{Price: Money{Amount: 9, Currency: "EUR"}},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	item := MenuItem{Restaurant: "nowhere"}
	err := item.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var fieldErrs FieldErrors
	ok := false
	if fe, isFE := err.(FieldErrors); isFE {
		fieldErrs, ok = fe, true
	}
	if !ok || len(fieldErrs) < 2 {
		t.Fatalf("expected multiple field errors, got %v", err)
	}
}
