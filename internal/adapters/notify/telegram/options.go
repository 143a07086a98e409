package telegram

import (
	"net/http"

	"github.com/Official-DomG/matchbot/pkg/logger"
)

// Option configures the notifier.
type Option func(*Notifier)

// WithToken sets the bot token.
func WithToken(token string) Option {
	return func(n *Notifier) { n.token = token }
}

// WithChatID sets the destination. A numeric id addresses a chat, anything
// else is taken as a channel username such as "@matchbot".
func WithChatID(id string) Option {
	return func(n *Notifier) { n.chatID = id }
}

// WithMaxLen sets the chunk size.
func WithMaxLen(maxLen int) Option {
	return func(n *Notifier) {
		if maxLen > 0 {
			n.maxLen = maxLen
		}
	}
}

// WithAPIEndpoint overrides the Bot API URL template (token, then method).
func WithAPIEndpoint(endpoint string) Option {
	return func(n *Notifier) {
		if endpoint != "" {
			n.endpoint = endpoint
		}
	}
}

// WithHTTPClient sets the client used for Bot API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(n *Notifier) {
		if hc != nil {
			n.httpClient = hc
		}
	}
}

// WithSender replaces the Bot API client entirely.
func WithSender(s Sender) Option {
	return func(n *Notifier) {
		if s != nil {
			n.sender = s
		}
	}
}

// WithLogger sets a custom logger for the notifier.
func WithLogger(l logger.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}
