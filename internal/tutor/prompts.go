package tutor

import "fmt"

// SystemPrompt is sent with every chat round trip.
const SystemPrompt = "You are a helpful PCB design tutor."

// FallbackReply is appended when a chat round trip fails for any reason.
const FallbackReply = "Oops! Something went wrong with LLaMA. Check the logs for error details."

// RecommendationPrompt builds the learning-path prompt for a search query.
func RecommendationPrompt(query string) string {
	return fmt.Sprintf(`A student is searching for PCB design learning content with the query: "%s"

Based on this search, suggest a personalized learning path. Consider:
- Skill level (beginner, intermediate, advanced)
- Specific topics to focus on
- Order to learn things
- Prerequisites

Keep the response concise and actionable, focusing on PCB design education.`, query)
}

// RecommendationHeader introduces a generated learning path in the transcript.
func RecommendationHeader(query string) string {
	return fmt.Sprintf(`Based on your search for "%s", here's a personalized learning path:`, query)
}
