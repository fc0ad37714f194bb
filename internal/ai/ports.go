package ai

import "context"

// AI is the external text-understanding service. It knows nothing about
// WhatsApp, catalogs or orders — prompt in, raw completion text out.
type AI interface {
	GetReply(
		ctx context.Context,
		systemPrompt string,
		userInput string,
	) (string, error)
}
