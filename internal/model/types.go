package model

import "time"

// Item status values. Transitions are one-directional: an item that leaves
// ItemAvailable never returns to it.
const (
	ItemAvailable = "available"
	ItemSold      = "sold"
	ItemRented    = "rented"
)

// Listing types.
const (
	TypeSale = "sale"
	TypeRent = "rent"
)

// Notification types.
const (
	NotifMessage = "message"
	NotifListing = "listing"
	NotifSale    = "sale"
	NotifGeneral = "general"
)

// User is an account in the marketplace. PasswordHash never crosses the API
// boundary.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	JoinedAt     time.Time `json:"joinedDate"`
}

// Item is a listing offered for sale or rent.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Condition   string    `json:"condition"`
	Status      string    `json:"status"`
	Images      []string  `json:"images"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Message is an immutable chat message between two users, optionally tied to
// an item.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	ItemID     string    `json:"itemId,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}

// Conversation is derived from the message set, never stored. ID is the
// canonical key of the sorted participant pair.
type Conversation struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants"`
	LastMessage  *Message `json:"lastMessage"`
	UnreadCount  int      `json:"unreadCount"`
}

// Notification targets a single user and is mutated only via its read flag.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	Link      string    `json:"link,omitempty"`
}

// Review carries a denormalized reviewer name so profiles render without a
// second lookup.
type Review struct {
	ID             string    `json:"id"`
	ReviewerID     string    `json:"reviewerId"`
	ReviewerName   string    `json:"reviewerName"`
	ReviewedUserID string    `json:"reviewedUserId"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Profile is the derived read-model combining identity fields with reputation
// and listing counts. It is computed on demand and never persisted.
type Profile struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Bio           string    `json:"bio"`
	Avatar        string    `json:"avatar,omitempty"`
	JoinedAt      time.Time `json:"joinedDate"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	TotalListings int       `json:"totalListings"`
	Reviews       []Review  `json:"reviews"`
}

// ItemFilter captures the optional query parameters of the item list endpoint.
// A zero filter lists everything except sold items; setting OwnerID lifts the
// sold exclusion so sellers see their full history.
type ItemFilter struct {
	OwnerID     string
	Category    string
	Type        string
	Search      string
	IncludeSold bool
}

// UserPatch carries the mutable profile fields. Nil means leave unchanged.
type UserPatch struct {
	Name *string
	Bio  *string
}
