package models

// Placeholder replaces about text that could not be loaded.
const Placeholder = "Failed to load this section."

// About holds the site and profile descriptions shown on the about view.
type About struct {
	SiteDescription    string `json:"site_description"`
	ProfileDescription string `json:"profile_description"`
}

// PlaceholderAbout is substituted when the about document cannot be fetched.
func PlaceholderAbout() About {
	return About{SiteDescription: Placeholder, ProfileDescription: Placeholder}
}
