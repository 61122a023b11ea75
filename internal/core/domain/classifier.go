package domain

// ClassifierFeatures is the feature bag handed to the external category
// classifier. It mirrors what the oracle was trained on; the core never
// interprets these fields.
type ClassifierFeatures struct {
	TransactionID string `json:"transactionID"`
	AccountID     string `json:"accountID"`
	Description   string `json:"description"`
	Amount        string `json:"amount"` // Decimal string, signed
	PaymentMethod string `json:"paymentMethod"`
	Date          string `json:"date"` // YYYY-MM-DD
}

// CategoryPrediction is the advisory answer of the classifier oracle.
type CategoryPrediction struct {
	CategoryID string  `json:"categoryID"`
	Confidence float64 `json:"confidence"` // 0..1
}
