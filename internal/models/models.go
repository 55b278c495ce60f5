package models

// Page holds the cleaned text of one document page.
type Page struct {
	PageNumber int
	Text       string
}

// Chunk is the unit of retrieval: a bounded word window of a page's text.
// The page number is inherited from the source page.
type Chunk struct {
	PageNumber int
	Content    string
}

// RetrievalResult is one ranked passage returned for a query.
type RetrievalResult struct {
	Rank       int
	Content    string
	PageNumber int
	Distance   float64
}

// Chat roles as sent to the completion API.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry of the conversation history.
type ChatMessage struct {
	Role    string
	Content string
}
