package slack

// Message is the chat.postMessage request body.
// Reference: https://api.slack.com/methods/chat.postMessage
type Message struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// Response is the envelope every Slack Web API method returns
type Response struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	TS      string `json:"ts,omitempty"`
	Channel string `json:"channel,omitempty"`
}
