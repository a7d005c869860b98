package creator

import "time"

type Platform string

const (
	PlatformOnlyFans Platform = "onlyfans"
	PlatformFansly   Platform = "fansly"
	PlatformOther    Platform = "other"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Creator is a content account the agency chats for. (platform, username)
// is unique.
type Creator struct {
	ID          string
	Platform    Platform
	Username    string
	DisplayName string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
