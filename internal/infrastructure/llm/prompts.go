package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	topicsTool = "collect_news_topics"
	threadTool = "write_tweet_thread"
)

func topicsSystemPrompt(count int) string {
	return fmt.Sprintf(`You are good at collecting recent news articles about a given keyword on the internet.
You should generate a list of %d topics closely related to the given keyword.
Use the provided tool to collect news about the generated list of topics.`, count)
}

func topicsUserPrompt(keyword string, count int) string {
	return fmt.Sprintf("Collect %d news articles about the topic '%s' from the internet.", count, keyword)
}

func threadSystemPrompt(keyword string) string {
	return fmt.Sprintf(`You are an autonomous twitter bot that's created to educate the people about %[1]s.
You are good at posting a series of twitter posts on the given list of news by summarizing each news as one short tweet.
You MUST only strictly post news that is about the topic %[1]s or the respective news topic given and ignore other news (double check this).
Always use simple words.
Use the provided tool to post all the tweets as a thread (list of tweets), with the 'https://tinyurl.com/' source URL of each tweet in the same position of the sources list.`, keyword)
}

func threadUserPrompt(digest string) string {
	return "Write and post a twitter thread about the given list of news articles:\n" + digest
}

// jsonShapeHint is appended for providers without tool calling.
const (
	topicsShapeHint = `Reply with JSON only: {"topics": ["topic 1", "topic 2"]}`
	threadShapeHint = `Reply with JSON only: {"tweets": ["tweet 1", "tweet 2"], "sources": ["https://tinyurl.com/xxxxxxxx", "https://tinyurl.com/yyyyyyyy"]}`
)

type topicsArgs struct {
	Topics []string `json:"topics"`
}

type threadArgs struct {
	Tweets  []string `json:"tweets"`
	Sources []string `json:"sources"`
}

// decodeJSON parses a model reply, tolerating markdown fences and prose
// around the object.
func decodeJSON(reply string, out any) error {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in reply %q", truncateReply(reply))
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err != nil {
		return fmt.Errorf("decode reply %q: %w", truncateReply(reply), err)
	}
	return nil
}

func truncateReply(s string) string {
	const limit = 200
	if r := []rune(s); len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return s
}
