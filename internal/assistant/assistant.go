package assistant

// Reply is the structured answer produced by the recommendation backend for a
// free-text viewer question.
type Reply struct {
	// Text is the conversational answer, in Italian.
	Text string
	// ChannelIDs lists the recommended channels, ordered by relevance. Only
	// ids present in the current catalog are meaningful; callers should drop
	// unknown ones.
	ChannelIDs []string
}
