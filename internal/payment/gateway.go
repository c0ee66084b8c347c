package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

var (
	ErrGatewayUnavailable   = errors.New("Unable to connect to the payment gateway. Please try again later.")
	ErrVerificationFailed   = errors.New("Payment verification failed. Please contact support with your payment ID.")
	ErrGatewayNotConfigured = errors.New("payment gateway keys are not configured")
)

type Order struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway wraps the Razorpay client. The client is built lazily so missing
// credentials surface at first use rather than at startup.
type Gateway struct {
	keyID     string
	keySecret string

	once   sync.Once
	client *razorpay.Client
}

func NewGateway(keyID, keySecret string) *Gateway {
	return &Gateway{keyID: keyID, keySecret: keySecret}
}

func (g *Gateway) getClient() (*razorpay.Client, error) {
	if g.keyID == "" || g.keySecret == "" {
		return nil, ErrGatewayNotConfigured
	}
	g.once.Do(func() {
		g.client = razorpay.NewClient(g.keyID, g.keySecret)
	})
	return g.client, nil
}

// CreateOrder creates a gateway order for the given amount in rupees. The
// amount is converted to paise and floored at one rupee.
func (g *Gateway) CreateOrder(ctx context.Context, amountInRupees int) (*Order, error) {
	client, err := g.getClient()
	if err != nil {
		log.Printf("[Payment] gateway not configured: %v", err)
		return nil, ErrGatewayUnavailable
	}

	safeAmount := int(math.Max(float64(amountInRupees), 1))
	data := map[string]interface{}{
		"amount":   safeAmount * 100,
		"currency": "INR",
		"receipt":  "receipt_" + uuid.NewString(),
	}

	body, err := client.Order.Create(data, nil)
	if err != nil {
		log.Printf("[Payment] failed to create order: %v", err)
		return nil, ErrGatewayUnavailable
	}

	order := &Order{Currency: "INR"}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int(amount)
	}
	if currency, ok := body["currency"].(string); ok {
		order.Currency = currency
	}
	if order.ID == "" {
		log.Printf("[Payment] gateway returned order without id: %v", body)
		return nil, ErrGatewayUnavailable
	}
	return order, nil
}

// VerifySignature checks that the callback signature matches
// HMAC-SHA256(secret, orderID|paymentID). This is the trust boundary for
// payment confirmation: a client could otherwise claim success without
// paying. Fails closed on any missing field.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return ErrVerificationFailed
	}
	if g.keySecret == "" {
		return ErrGatewayNotConfigured
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrVerificationFailed
	}
	return nil
}
