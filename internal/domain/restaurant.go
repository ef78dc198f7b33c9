package domain

// Restaurant is a single listing as served by the restaurant API.
// JSON tags follow the remote payload so cached snapshots round-trip unchanged.
type Restaurant struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Geo  Geo    `json:"geo"`
}

// Geo holds location details for a restaurant
type Geo struct {
	Address Address `json:"address"`
}

// Address is the postal address of a restaurant
type Address struct {
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	PostalCode      string `json:"postalCode,omitempty"`
}

// Locality returns the town or city, falling back to the street address
func (r Restaurant) Locality() string {
	if r.Geo.Address.AddressLocality != "" {
		return r.Geo.Address.AddressLocality
	}
	return r.Geo.Address.StreetAddress
}
