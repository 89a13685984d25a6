package booking

import "strings"

// Requester is whoever asked for the booking. Identifiers are free text.
type Requester struct {
	userID   string
	userName string
}

func NewRequester(userID, userName string) (Requester, error) {
	id := strings.TrimSpace(userID)
	if id == "" {
		return Requester{}, ErrEmptyUserID
	}
	return Requester{userID: id, userName: strings.TrimSpace(userName)}, nil
}

// ReconstructRequester rebuilds a stored requester. Stored records predate the
// user id check, so an empty id is kept as is.
func ReconstructRequester(userID, userName string) Requester {
	return Requester{userID: userID, userName: userName}
}

func (r Requester) UserID() string   { return r.userID }
func (r Requester) UserName() string { return r.userName }
