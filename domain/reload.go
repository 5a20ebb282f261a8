package domain

// ReloadEvent asks the bot to replace its command prefix.
// The value is validated before it takes effect.
type ReloadEvent struct {
	Prefix string
	Source string
}
