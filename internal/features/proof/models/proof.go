package models

// ListRequest is the body of an allow-list proof lookup.
type ListRequest struct {
	Wallet string `json:"wallet"`
}

// ListResponse is the allow-list service reply: either a proof or a message
// explaining why the wallet is not eligible.
type ListResponse struct {
	Proof   []string `json:"proof,omitempty"`
	Message string   `json:"message,omitempty"`
}
