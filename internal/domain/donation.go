package domain

// Donation represents a supporter contribution that is spread over open
// charity projects.
type Donation struct {
	Funding
	UserID  *string
	Comment string
}

// NewDonation is the input for creating a donation.
type NewDonation struct {
	UserID     *string
	FullAmount int64
	Comment    string
}
