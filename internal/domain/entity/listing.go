package entity

import (
	"regexp"
	"strings"
	"time"
)

type Listing struct {
	ID             string    `json:"id" firestore:"id"`
	OwnerID        string    `json:"ownerId" firestore:"ownerId"`
	Title          string    `json:"title" firestore:"title"`
	Author         string    `json:"author" firestore:"author"`
	Genre          string    `json:"genre" firestore:"genre"`
	Condition      string    `json:"condition" firestore:"condition"`
	Description    string    `json:"description" firestore:"description"`
	ContactApp     string    `json:"contactApp" firestore:"contactApp"`
	ContactID      string    `json:"contactId" firestore:"contactId"`
	ContactLink    string    `json:"contactLink,omitempty" firestore:"-"`
	ImageURLs      []string  `json:"imageUrls" firestore:"imageUrls"`
	ImagePublicIDs []string  `json:"imagePublicIds" firestore:"imagePublicIds"`
	IsPublic       bool      `json:"isPublic" firestore:"isPublic"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// VisibleTo reports whether uid may read the listing. An empty uid is an anonymous caller.
func (l *Listing) VisibleTo(uid string) bool {
	return l.IsPublic || (uid != "" && uid == l.OwnerID)
}

func (l *Listing) OwnedBy(uid string) bool {
	return uid != "" && uid == l.OwnerID
}

// Normalize fills derived fields and replaces nil image slices with empty ones.
func (l *Listing) Normalize() *Listing {
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
	if l.ImagePublicIDs == nil {
		l.ImagePublicIDs = []string{}
	}
	l.ContactLink = ContactLink(l.ContactApp, l.ContactID)
	return l
}

var nonDigits = regexp.MustCompile(`\D`)

// ContactLink builds the deep link for a contact app, or "" when the pair is
// incomplete or the app is unknown.
func ContactLink(app, id string) string {
	if app == "" || id == "" {
		return ""
	}

	switch strings.ToLower(app) {
	case "whatsapp":
		return "https://wa.me/" + nonDigits.ReplaceAllString(id, "")
	case "gmail":
		return "mailto:" + id
	case "telegram":
		return "https://t.me/" + id
	case "instagram":
		return "https://instagram.com/" + id
	case "kakaotalk":
		return "https://open.kakao.com/o/" + id
	default:
		return ""
	}
}

// ListingPatch carries the fields of a partial update. Nil means "not supplied".
type ListingPatch struct {
	Title       *string
	Author      *string
	Genre       *string
	Condition   *string
	Description *string
	ContactApp  *string
	ContactID   *string
	IsPublic    *bool

	ImageURLs      []string
	ImagePublicIDs []string
	ReplaceImages  bool

	UpdatedAt time.Time
}

// Apply merges the patch into l, mirroring what the repository writes.
func (p ListingPatch) Apply(l *Listing) {
	setString(&l.Title, p.Title)
	setString(&l.Author, p.Author)
	setString(&l.Genre, p.Genre)
	setString(&l.Condition, p.Condition)
	setString(&l.Description, p.Description)
	setString(&l.ContactApp, p.ContactApp)
	setString(&l.ContactID, p.ContactID)
	if p.IsPublic != nil {
		l.IsPublic = *p.IsPublic
	}
	if p.ReplaceImages {
		l.ImageURLs = p.ImageURLs
		l.ImagePublicIDs = p.ImagePublicIDs
	}
	if !p.UpdatedAt.IsZero() {
		l.UpdatedAt = p.UpdatedAt
	}
	l.Normalize()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
