package facdir

// EmailStatus classifies how (or whether) a record's email was obtained.
type EmailStatus string

// EmailStatus values. StatusNotListed and StatusObfuscatedResolved are
// reserved and currently have no producer.
const (
	StatusPresent              EmailStatus = "present"
	StatusFoundOnProfile       EmailStatus = "found_on_profile"
	StatusObfuscatedResolved   EmailStatus = "obfuscated_resolved"
	StatusMissing              EmailStatus = "missing"
	StatusNotListed            EmailStatus = "not_listed"
	StatusObfuscatedUnresolved EmailStatus = "obfuscated_unresolved"
)

// EmailStatuses returns every EmailStatus value.
func EmailStatuses() []EmailStatus {
	return []EmailStatus{
		StatusPresent,
		StatusFoundOnProfile,
		StatusObfuscatedResolved,
		StatusMissing,
		StatusNotListed,
		StatusObfuscatedUnresolved,
	}
}

// Valid reports whether s is a known EmailStatus.
func (s EmailStatus) Valid() bool {
	for _, v := range EmailStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

// Record is a normalized faculty member.
type Record struct {
	Name         string      `json:"name"`
	Title        string      `json:"title,omitempty"`
	Email        string      `json:"email,omitempty"`
	EmailStatus  EmailStatus `json:"email_status"`
	ProfileURL   string      `json:"profile_url,omitempty"`
	DirectoryURL string      `json:"directory_url"`
	Socials      []string    `json:"socials"`
	BioSnippet   string      `json:"bio_snippet,omitempty"`
}
