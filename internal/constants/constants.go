package constants

import "time"

const (
	// AppName is used for the config directory, keyring service, and log prefix.
	AppName = "apptbot"

	// DateFormat is the wire/storage format for draft dates.
	DateFormat = "2006-01-02"
	// DisplayFormat is how instants are rendered in messages and listings.
	DisplayFormat = "Monday, January 2, 2006 at 3:04 PM"

	// FollowUpOffset is the fixed delay between the reminder firing and the
	// follow-up firing.
	FollowUpOffset = 2 * time.Minute

	// DefaultCountryPrefix is prepended to bare 10-digit phone numbers.
	DefaultCountryPrefix = "+91"

	// MaxMessageLength caps free-text intake before extraction.
	MaxMessageLength = 500

	// WatchLockfileName marks a live watch process so a second one cannot
	// start a duplicate timer domain against the same store.
	WatchLockfileName = "watch.lock"

	// DefaultServerURL is where the client looks for the notification server.
	DefaultServerURL = "http://localhost:10000"

	// DefaultGeminiModel is the extraction model used by the server.
	DefaultGeminiModel = "gemini-2.0-flash"

	// Keyring secret names.
	SecretSMTPPassword = "smtp-password"
	SecretTwilioToken  = "twilio-auth-token"
	SecretGeminiKey    = "gemini-api-key"
)
