package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in its parent post's document. Comments are
// append-only and are removed with the post.
type Comment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	Name      string             `json:"name" bson:"name"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Post is a blog post document with its comments embedded.
// Author is set at creation and never changes afterwards.
type Post struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Tags      []string           `json:"tags" bson:"tags"`
	ImageURL  string             `json:"imageUrl" bson:"imageUrl"`
	Author    primitive.ObjectID `json:"author" bson:"author"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AuthorRef is the minimal author projection attached to posts on reads.
type AuthorRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// ResolvedPost is a post with its author reference resolved to a name.
// The outer Author field shadows Post.Author in the JSON encoding.
type ResolvedPost struct {
	Post
	Author AuthorRef `json:"author"`
}

// PostPage is one page of the post listing.
type PostPage struct {
	Posts []ResolvedPost `json:"posts"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}
