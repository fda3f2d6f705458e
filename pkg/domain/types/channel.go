package types

import "fmt"

// Channel represents a communication channel for reaching a lead.
// An empty Channel means the preference is unknown.
type Channel string

const (
	ChannelLinkedIn Channel = "linkedin"
	ChannelEmail    Channel = "email"
	ChannelText     Channel = "text"
	ChannelOther    Channel = "other"
)

// AllChannels returns all valid channels
func AllChannels() []Channel {
	return []Channel{
		ChannelLinkedIn,
		ChannelEmail,
		ChannelText,
		ChannelOther,
	}
}

// IsValid checks if the channel is valid. The empty channel is not valid;
// callers treat it as "no preference recorded".
func (c Channel) IsValid() bool {
	switch c {
	case ChannelLinkedIn, ChannelEmail, ChannelText, ChannelOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the channel
func (c Channel) String() string {
	return string(c)
}

// ParseChannel parses a string into a Channel
func ParseChannel(s string) (Channel, error) {
	ch := Channel(s)
	if !ch.IsValid() {
		return "", fmt.Errorf("invalid channel: %s", s)
	}
	return ch, nil
}
