package domain

// Genres are the affiliate buckets of affiliates.json, in file order
var Genres = []string{
	"Web/Hosting",
	"Dev/Tools",
	"AI/Automation",
	"Security/Privacy",
	"Media: Video/Audio",
	"PDF/Docs",
	"Images/Design",
	"Data/Spreadsheets",
	"Business/Accounting/Tax",
	"Marketing/Social",
	"Productivity",
	"Education/Language",
}

const (
	DefaultPriority = 50
	MinPriority     = 30
	MaxPriority     = 90
)
