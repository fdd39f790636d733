package catalog

// defaultEntries mirrors the site's navigation targets in the order they appear on the site.
var defaultEntries = []Entry{
	// tests
	{KindTest, "Complete Blood Count (CBC)", "Blood Tests", "test-menu.html#cbc"},
	{KindTest, "Basic Metabolic Panel", "Blood Tests", "test-menu.html#bmp"},
	{KindTest, "Lipid Panel", "Cholesterol", "test-menu.html#lipid"},
	{KindTest, "Thyroid Function Tests (TSH, T3, T4)", "Hormone Tests", "test-menu.html#thyroid"},
	{KindTest, "Hemoglobin A1C", "Diabetes", "test-menu.html#a1c"},
	{KindTest, "Urinalysis", "Urine Tests", "test-menu.html#urinalysis"},
	{KindTest, "COVID-19 PCR Test", "Infectious Disease", "test-menu.html#covid"},
	{KindTest, "Vitamin D Test", "Vitamins", "test-menu.html#vitamin-d"},

	// services
	{KindService, "Wellness Programs", "Services", "wellness.html"},
	{KindService, "Specialty Testing", "Services", "specialty-testing.html"},
	{KindService, "Corporate Health Screening", "Services", "services.html#corporate"},

	// pages
	{KindPage, "Find a Location", "Information", "find-location.html"},
	{KindPage, "Book Appointment", "Information", "book-appointment.html"},
	{KindPage, "Patient Portal", "Information", "patient-portal.html"},
	{KindPage, "Insurance Information", "Information", "insurance.html"},
	{KindPage, "Test Results", "Information", "results.html"},
	{KindPage, "Pay Bill Online", "Information", "billing.html"},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultEntries)
}
