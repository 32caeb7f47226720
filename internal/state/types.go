package state

import "strings"

// Request statuses used by the backend for connection requests.
const (
	StatusInterested = "interested"
	StatusIgnored    = "ignored"
	StatusAccepted   = "accepted"
	StatusRejected   = "rejected"
)

// Request directions relative to the current user.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// RequestInfo is pending-relationship status denormalized onto a user
// summary so the feed can suppress duplicate request attempts.
type RequestInfo struct {
	Exists    bool   `json:"exists"`
	Status    string `json:"status"`
	Direction string `json:"direction"`
	RequestID string `json:"requestId"`
}

// User is a user summary as the backend serializes it.
type User struct {
	ID          string       `json:"_id"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	PhotoURL    string       `json:"photoUrl,omitempty"`
	About       string       `json:"about,omitempty"`
	Gender      string       `json:"gender,omitempty"`
	Age         int          `json:"age,omitempty"`
	Skills      string       `json:"skills,omitempty"`
	RequestInfo *RequestInfo `json:"requestInfo,omitempty"`
}

// DisplayName joins the name parts, tolerating a missing last name.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SkillList splits the comma-separated skills tag list, dropping blanks.
func (u User) SkillList() []string {
	var out []string
	for _, s := range strings.Split(u.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Request is an incoming or outgoing connection request.
type Request struct {
	ID       string `json:"_id"`
	FromUser *User  `json:"fromUserId"`
	ToUser   *User  `json:"toUserId"`
	Status   string `json:"status"`
}

// ChatMeta is the denormalized per-counterpart chat metadata entry.
type ChatMeta struct {
	LastMessage string
	Timestamp   int64
	UnreadCount int
}

// Toast variants.
const (
	ToastInfo    = "info"
	ToastSuccess = "success"
	ToastError   = "error"
)

// Toast is a transient notification. It self-expires after Timeout
// unless dismissed earlier.
type Toast struct {
	ID      string
	Message string
	Variant string
	Timeout int // milliseconds
}
