package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Default number of words in a daily lesson
	DefaultDailyWords int
	// Default proficiency level for new users
	DefaultLevel string
	// Choices offered in the daily-quota settings menu
	DailyWordChoices []int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		DefaultDailyWords: 10,
		DefaultLevel:      "A2",
		DailyWordChoices:  []int{5, 10, 15, 20, 30},
	}
}
