package chatbot

import (
	"regexp"

	"resume-chatbot/backend/internal/adapter"
	"resume-chatbot/backend/internal/constants"
	"resume-chatbot/backend/internal/graph"
)

// defaultContext is the system directive sent on every turn
const defaultContext = `
You are an AI Resume Chatbot. When a user provides their resume, analyze its strengths and weaknesses.
If the user provides a job link, extract the job requirements from the page and evaluate how well the resume matches the job, answer their follow-up questions if there are any and also make use of the webCrawlAndScrape function with the job link given by user to get job-relevant sections such as: job title, company, location, job description, job salary, benefits, responsibilities, and qualifications. Return in clean markdown with headers and bullet lists.
Assume every job link is new in the most recent user message and you need to make use of the webCrawlAndScrape function.
You will also be given past messages history to understand incoming user message and context.
Be honest, helpful, and practical.
`

// urlPattern detects a well-formed http(s) link in the current
// message. Matching replayed history would re-trigger the scraper on
// every follow-up turn, so eligibility looks at the current content
// only.
var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// hasLink reports whether the content contains an http(s) URL
func hasLink(content string) bool {
	return urlPattern.MatchString(content)
}

// buildContext assembles the exact prompt for one turn: system
// directive, prior messages oldest-first, then the new user message.
// The history slice arrives most-recent-first from the store.
func buildContext(history []graph.Message, input TurnInput) []adapter.ChatMessage {
	messages := make([]adapter.ChatMessage, 0, len(history)+2)
	messages = append(messages, adapter.ChatMessage{
		Role:    constants.RoleSystem,
		Content: defaultContext,
	})

	for i := len(history) - 1; i >= 0; i-- {
		messages = append(messages, adapter.ChatMessage{
			Role:    history[i].Role,
			Content: history[i].Content,
		})
	}

	messages = append(messages, adapter.ChatMessage{
		Role:    input.Role,
		Content: input.Content,
	})

	return messages
}
