package app

import "fmt"

// StrangerName the display alias both participants see for each other.
// Derived only from the chat id so it is stable across sessions and
// identical for both sides without storing anything.
func StrangerName(chatID string) string {
	sum := 0
	for i := 0; i < len(chatID); i++ {
		sum += int(chatID[i])
	}
	return fmt.Sprintf("Stranger #%d", (sum%900)+100)
}
