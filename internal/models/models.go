package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Block represents a ledger block as returned by a node's blocks endpoint.
type Block struct {
	Hash               string              `json:"hash"`
	PreviousHash       string              `json:"previousHash"`
	Nonce              json.Number         `json:"nonce"`
	SignedTransactions []SignedTransaction `json:"signedTransaction"`
}

// SignedTransaction represents a transaction record carried by a block.
type SignedTransaction struct {
	Transaction Transaction `json:"transaction"`
}

// Transaction represents the part of a transaction the dashboard displays.
type Transaction struct {
	Hash string `json:"hash"`
}

// Transfer records one transfer submitted from a peer's form.
type Transfer struct {
	ID          uuid.UUID `json:"id"`
	From        int       `json:"from"`
	Payee       string    `json:"payee"`
	Amount      string    `json:"amount"`
	URL         string    `json:"url"`
	Status      int       `json:"status"`
	OK          bool      `json:"ok"`
	Response    string    `json:"response"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewTransfer returns a transfer with a fresh ID and submission time.
func NewTransfer(from int, payee, amount string) *Transfer {
	return &Transfer{
		ID:          uuid.New(),
		From:        from,
		Payee:       payee,
		Amount:      amount,
		SubmittedAt: time.Now().UTC(),
	}
}
