package analysis

import "mercator-hq/chatlens/pkg/chat"

// UserExtractor projects participant identities out of a document.
type UserExtractor interface {
	// RequesterUsername returns requesterUsername, or false when the document
	// is invalid or the field is missing, empty or not text.
	RequesterUsername(doc any) (string, bool)

	// ChatUsers returns both participants. Invalid input yields two absent
	// participants.
	ChatUsers(doc any) ChatUsers
}

// UserInfoExtractor is the default UserExtractor.
type UserInfoExtractor struct {
	validator Validator
}

// NewUserExtractor creates a UserExtractor backed by validator.
func NewUserExtractor(validator Validator) *UserInfoExtractor {
	return &UserInfoExtractor{validator: validator}
}

// RequesterUsername implements UserExtractor.
func (e *UserInfoExtractor) RequesterUsername(doc any) (string, bool) {
	if !e.validator.IsValidDocument(doc) {
		return "", false
	}
	name := username(doc, chat.FieldRequesterUsername)
	return name, name != ""
}

// ChatUsers implements UserExtractor.
func (e *UserInfoExtractor) ChatUsers(doc any) ChatUsers {
	if !e.validator.IsValidDocument(doc) {
		return ChatUsers{}
	}
	return ChatUsers{
		Requester: username(doc, chat.FieldRequesterUsername),
		Responder: username(doc, chat.FieldResponderUsername),
	}
}

// username reads a text field; anything that is not text reads as "".
func username(doc any, field string) string {
	d, ok := chat.AsDocument(doc)
	if !ok {
		return ""
	}
	name, _ := d.String(field)
	return name
}

var _ UserExtractor = (*UserInfoExtractor)(nil)
