// Package payment tokenizes cards for the card-funded recharge path.
// Mobile-wallet recharges carry only a sender number and skip it.
package payment

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"
)

// CardInput is the raw card detail accepted at the boundary.
type CardInput struct {
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
}

// CardToken is what gets attached to a recharge's payment metadata.
type CardToken struct {
	Token    string `json:"token"`
	CardType string `json:"card_type"`
	Last4    string `json:"last4"`
}

// TokenizeCard validates the card and exchanges it for a gateway
// token. Test tokens (tok_*) pass through directly.
func TokenizeCard(card CardInput) (*CardToken, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	if strings.HasPrefix(card.Number, "tok_") {
		return &CardToken{Token: card.Number, CardType: "Test"}, nil
	}

	if !isValidCardNumber(card.Number) {
		return nil, errors.New("invalid card number: failed validation check")
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &card.Number,
			ExpMonth: &card.ExpiryMonth,
			ExpYear:  &card.ExpiryYear,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		return nil, fmt.Errorf("card tokenization failed: %w", err)
	}

	last4 := card.Number
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	return &CardToken{
		Token:    stripeToken.ID,
		CardType: string(stripeToken.Card.Brand),
		Last4:    last4,
	}, nil
}

// Luhn check.
func isValidCardNumber(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}
	var sum int
	shouldDouble := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		c := cardNumber[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		shouldDouble = !shouldDouble
	}
	return sum%10 == 0
}
