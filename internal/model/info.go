package model

// BusinessInfo is the static contact block shown in the location and footer
// sections of the public page.
type BusinessInfo struct {
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	MapURL        string        `json:"map_url"`
	BusinessHours BusinessHours `json:"business_hours"`
}

type BusinessHours struct {
	Weekdays string `json:"weekdays"`
	Weekends string `json:"weekends"`
}

// DefaultBusinessInfo is served when no override is configured.
var DefaultBusinessInfo = BusinessInfo{
	Name:    "Flavor House",
	Phone:   "+84 384 273 44",
	Address: "123 Culinary Street, New York, NY 10012, USA",
	MapURL:  "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3022.2412648750455!2d-73.98731492346679!3d40.75889713539106!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x89c25855c6480299%3A0x55194ec5a1ae072e!2sTimes%20Square!5e0!3m2!1sen!2sus!4v1703181234567!5m2!1sen!2sus",
	BusinessHours: BusinessHours{
		Weekdays: "11:00 AM - 10:00 PM",
		Weekends: "11:00 AM - 11:00 PM",
	},
}
