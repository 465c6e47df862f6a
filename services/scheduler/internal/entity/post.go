package entity

import "time"

type PostStatus string

const (
	StatusNeedsApproval PostStatus = "needs_approval"
	StatusPending       PostStatus = "pending"
	StatusPublished     PostStatus = "published"
	StatusFailed        PostStatus = "failed"
	StatusBlocked       PostStatus = "blocked"
)

// transitions is the complete set of legal lifecycle edges. Everything not
// listed here is invalid, including every edge out of a terminal status.
var transitions = map[PostStatus][]PostStatus{
	StatusNeedsApproval: {StatusPending, StatusBlocked},
	StatusPending:       {StatusPublished, StatusFailed},
}

// CanTransitionTo reports whether moving from s to next follows a legal
// lifecycle edge.
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s has no outgoing edges.
func (s PostStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s PostStatus) Valid() bool {
	switch s {
	case StatusNeedsApproval, StatusPending, StatusPublished, StatusFailed, StatusBlocked:
		return true
	}
	return false
}

type Provider string

const (
	ProviderYouTube   Provider = "youtube"
	ProviderFacebook  Provider = "facebook"
	ProviderInstagram Provider = "instagram"
	ProviderTikTok    Provider = "tiktok"
	ProviderTwitter   Provider = "twitter"
	ProviderLinkedIn  Provider = "linkedin"
	ProviderPinterest Provider = "pinterest"
)

var providerNames = map[Provider]string{
	ProviderYouTube:   "YouTube",
	ProviderFacebook:  "Facebook",
	ProviderInstagram: "Instagram",
	ProviderTikTok:    "TikTok",
	ProviderTwitter:   "X/Twitter",
	ProviderLinkedIn:  "LinkedIn",
	ProviderPinterest: "Pinterest",
}

func (p Provider) Valid() bool {
	_, ok := providerNames[p]
	return ok
}

// DisplayName returns the user-facing platform name.
func (p Provider) DisplayName() string {
	if name, ok := providerNames[p]; ok {
		return name
	}
	return string(p)
}

func Providers() []Provider {
	return []Provider{
		ProviderYouTube,
		ProviderFacebook,
		ProviderInstagram,
		ProviderTikTok,
		ProviderTwitter,
		ProviderLinkedIn,
		ProviderPinterest,
	}
}

type Post struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Provider    Provider   `json:"provider"`
	Content     string     `json:"content"`
	MediaURL    string     `json:"media_url,omitempty"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	Status      PostStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
